package rest_test

import (
	"context"
	"testing"

	"github.com/getkin/kin-openapi/openapi3"
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
)

func TestOpenAPIDocument(t *testing.T) {
	RegisterFailHandler(Fail)
	RunSpecs(t, "OpenAPI Document Suite")
}

var _ = Describe("OpenAPI document", func() {
	var doc *openapi3.T

	BeforeEach(func() {
		loader := openapi3.NewLoader()
		var err error
		doc, err = loader.LoadFromFile("../../../api/openapi.yml")
		Expect(err).NotTo(HaveOccurred())
	})

	It("should be a valid OpenAPI 3 document", func() {
		Expect(doc.Validate(context.Background())).To(Succeed())
	})

	It("should document every route the router mounts", func() {
		for _, path := range []string{
			"/departments",
			"/departments/{id}",
			"/employees",
			"/employees/{id}",
			"/employees/{id}/time-records",
			"/employees/with-open-records",
			"/time-records",
			"/time-records/{id}",
			"/time-records/check-in",
			"/time-records/check-out",
			"/reports/summary",
			"/reports/daily",
			"/reports/export/csv",
			"/status",
			"/health",
		} {
			Expect(doc.Paths.Find(path)).NotTo(BeNil(), "missing path %s", path)
		}
	})

	It("should constrain summary grouping to the supported values", func() {
		item := doc.Paths.Find("/reports/summary")
		Expect(item).NotTo(BeNil())

		var groupBy *openapi3.Parameter
		for _, ref := range item.Get.Parameters {
			if ref.Value != nil && ref.Value.Name == "group_by" {
				groupBy = ref.Value
			}
		}
		Expect(groupBy).NotTo(BeNil())
		Expect(groupBy.Schema.Value.Enum).To(ConsistOf("employee", "department", "date"))
	})
})
