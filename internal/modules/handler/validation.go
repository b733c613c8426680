package handler

import (
	"errors"
	"reflect"
	"strings"
	"sync"
	"time"

	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"

	"github.com/Renishchandera/gameforge-ai/internal/modules/model"
	"github.com/Renishchandera/gameforge-ai/internal/modules/service"
)

var registerOnce sync.Once

// RegisterValidators installs the enum tags on gin's validator. Safe to call more than once.
func RegisterValidators() {
	registerOnce.Do(func() {
		v, ok := binding.Validator.Engine().(*validator.Validate)
		if !ok {
			return
		}
		v.RegisterTagNameFunc(func(f reflect.StructField) string {
			name := strings.SplitN(f.Tag.Get("json"), ",", 2)[0]
			if name == "-" {
				return ""
			}
			return name
		})
		_ = v.RegisterValidation("project_status", enumValidator(model.IsProjectStatus))
		_ = v.RegisterValidation("task_status", enumValidator(model.IsTaskStatus))
		_ = v.RegisterValidation("task_priority", enumValidator(model.IsTaskPriority))
		_ = v.RegisterValidation("doc_type", enumValidator(model.IsDocType))
	})
}

func enumValidator(ok func(string) bool) validator.Func {
	return func(fl validator.FieldLevel) bool {
		f := fl.Field()
		for f.Kind() == reflect.Ptr {
			if f.IsNil() {
				return true
			}
			f = f.Elem()
		}
		return f.Kind() == reflect.String && ok(f.String())
	}
}

var tagErrs = map[string]error{
	"project_status": service.ErrInvalidStatus,
	"task_status":    service.ErrInvalidStatus,
	"task_priority":  service.ErrInvalidPriority,
	"doc_type":       service.ErrInvalidDocType,
}

// bindingMsg turns a bind error into the client message of the matching sentinel.
func bindingMsg(err error) string {
	var verrs validator.ValidationErrors
	if errors.As(err, &verrs) {
		for _, fe := range verrs {
			if s, ok := tagErrs[fe.Tag()]; ok {
				return s.Error()
			}
		}
	}
	return "Invalid request body"
}

func parseUUIDParam(raw string) (uuid.UUID, bool) {
	id, err := uuid.Parse(raw)
	return id, err == nil
}

// dateInput accepts RFC3339 timestamps or plain YYYY-MM-DD dates.
type dateInput struct {
	time.Time
}

func (d *dateInput) UnmarshalJSON(b []byte) error {
	s := strings.Trim(string(b), `"`)
	if s == "" || s == "null" {
		d.Time = time.Time{}
		return nil
	}
	for _, layout := range []string{time.RFC3339Nano, "2006-01-02"} {
		if t, err := time.Parse(layout, s); err == nil {
			d.Time = t
			return nil
		}
	}
	return errors.New("dueDate must be RFC3339 or YYYY-MM-DD")
}

func (d *dateInput) ptr() *time.Time {
	if d == nil || d.IsZero() {
		return nil
	}
	t := d.Time
	return &t
}
