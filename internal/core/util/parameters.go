package util

import (
	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"

	"todofront/internal/core/domain"
)

func ParamsToMap[T any](c *gin.Context) (T, error) {
	var params T

	if err := c.ShouldBindJSON(&params); err != nil {
		return params, err
	}

	return params, nil
}

// RawInputFromRequest reads a creation request from a JSON object or from form fields.
// Form fields keep all their values; the validator picks the first.
func RawInputFromRequest(c *gin.Context) (domain.RawInput, error) {
	if c.ContentType() == binding.MIMEJSON {
		params, err := ParamsToMap[map[string]any](c)
		if err != nil {
			return nil, err
		}

		if params == nil {
			params = map[string]any{}
		}

		return domain.RawInput(params), nil
	}

	if err := c.Request.ParseForm(); err != nil {
		return nil, err
	}

	raw := domain.RawInput{}
	for key, values := range c.Request.PostForm {
		raw[key] = values
	}

	return raw, nil
}
