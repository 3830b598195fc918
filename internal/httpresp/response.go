package httpresp

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// ListMeta says whose appointments a list holds and which days it covers.
// From and To are inclusive "YYYY-MM-DD" dates.
type ListMeta struct {
	EmployeeID string `json:"employee_id"`
	From       string `json:"from"`
	To         string `json:"to"`
}

type ListResponse[T any] struct {
	Data  []T      `json:"data"`
	Total int      `json:"total"`
	Meta  ListMeta `json:"meta"`
}

func OK(c *gin.Context, data any) {
	c.JSON(http.StatusOK, data)
}

func List[T any](c *gin.Context, data []T, meta ListMeta) {
	if data == nil {
		data = []T{}
	}
	c.JSON(http.StatusOK, ListResponse[T]{
		Data:  data,
		Total: len(data),
		Meta:  meta,
	})
}
