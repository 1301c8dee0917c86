package handler

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"reflect"
	"strconv"
	"strings"
	"sync"

	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
)

var registerTagNameOnce sync.Once

// useJSONFieldNames makes validation errors report json paths such as
// "fullname.firstname" instead of Go field names.
func useJSONFieldNames() {
	registerTagNameOnce.Do(func() {
		v, ok := binding.Validator.Engine().(*validator.Validate)
		if !ok {
			return
		}
		v.RegisterTagNameFunc(func(fld reflect.StructField) string {
			name, _, _ := strings.Cut(fld.Tag.Get("json"), ",")
			if name == "-" {
				return ""
			}
			return name
		})
	})
}

// fieldMessages holds human readable messages per field path.
var fieldMessages = map[string]string{
	"fullname.firstname":  "First name must be at least 3 characters long",
	"email":               "Invalid Email",
	"password":            "Password must be at least 6 characters long",
	"vehicle.color":       "Color must be at least 3 characters long",
	"vehicle.plate":       "Plate must be at least 3 characters long",
	"vehicle.capacity":    "Capacity must be at least 1",
	"vehicle.vehicleType": "Invalid vehicle type",
}

// bindJSON decodes and validates the request body. On failure it writes a 400
// response and returns false.
func bindJSON(c *gin.Context, dst any) bool {
	useJSONFieldNames()

	err := c.ShouldBindJSON(dst)
	if err == nil {
		return true
	}

	var verrs validator.ValidationErrors
	if errors.As(err, &verrs) {
		c.JSON(http.StatusBadRequest, ErrorResponse{
			Error:   "validation failed",
			Message: validationMessages(verrs),
		})
		return false
	}

	c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid request body", Message: "invalid request body"})
	return false
}

func validationMessages(verrs validator.ValidationErrors) map[string]string {
	fields := make(map[string]string, len(verrs))
	for _, fe := range verrs {
		// Namespace is "<Struct>.<path>"; drop the struct name.
		_, path, _ := strings.Cut(fe.Namespace(), ".")
		if _, seen := fields[path]; seen {
			continue
		}
		if msg, ok := fieldMessages[path]; ok {
			fields[path] = msg
			continue
		}
		fields[path] = fmt.Sprintf("%s failed on %s", path, fe.Tag())
	}
	return fields
}

// capacity accepts a JSON number or a numeric string, since form inputs submit strings.
// Anything else decodes to zero and is rejected by validation.
type capacity int

func (v *capacity) UnmarshalJSON(data []byte) error {
	var n json.Number
	if err := json.Unmarshal(data, &n); err == nil {
		if i, err := strconv.Atoi(n.String()); err == nil {
			*v = capacity(i)
			return nil
		}
	}

	var s string
	if err := json.Unmarshal(data, &s); err == nil {
		if i, err := strconv.Atoi(strings.TrimSpace(s)); err == nil {
			*v = capacity(i)
			return nil
		}
	}

	*v = 0
	return nil
}
