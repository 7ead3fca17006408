package handlers

import (
	"errors"
	"fmt"
	"net/http"
	"reflect"
	"strings"
	"sync"

	"github.com/alligatorO15/fin-mentor/internal/models"
	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
)

var registerOnce sync.Once

// RegisterValidators добавляет в валидатор gin теги budgetcategory, budgetperiod и notblank
func RegisterValidators() error {
	v, ok := binding.Validator.Engine().(*validator.Validate)
	if !ok {
		return errors.New("gin validator engine is not go-playground/validator")
	}

	var err error
	registerOnce.Do(func() {
		// в сообщениях имена полей как в json
		v.RegisterTagNameFunc(func(f reflect.StructField) string {
			name := strings.SplitN(f.Tag.Get("json"), ",", 2)[0]
			if name == "" || name == "-" {
				return f.Name
			}
			return name
		})

		err = errors.Join(
			v.RegisterValidation("budgetcategory", func(fl validator.FieldLevel) bool {
				_, err := models.ParseCategory(fl.Field().String())
				return err == nil
			}),
			v.RegisterValidation("budgetperiod", func(fl validator.FieldLevel) bool {
				_, err := models.ParsePeriod(fl.Field().String())
				return err == nil
			}),
			v.RegisterValidation("notblank", func(fl validator.FieldLevel) bool {
				return strings.TrimSpace(fl.Field().String()) != ""
			}),
		)
	})
	return err
}

// bindError отвечает на ошибку ShouldBind*, неизвестная категория это 422 как и в сервисах
func bindError(c *gin.Context, err error) {
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	status := http.StatusBadRequest
	msgs := make([]string, 0, len(verrs))
	for _, e := range verrs {
		if e.Tag() == "budgetcategory" {
			status = http.StatusUnprocessableEntity
		}
		msgs = append(msgs, fieldErrorToString(e))
	}
	c.JSON(status, gin.H{"error": "invalid input: " + strings.Join(msgs, "; ")})
}

func fieldErrorToString(e validator.FieldError) string {
	switch e.Tag() {
	case "required":
		return fmt.Sprintf("%s is required", e.Field())
	case "notblank":
		return fmt.Sprintf("%s must not be blank", e.Field())
	case "budgetcategory":
		return fmt.Sprintf("%s must be one of needs, wants, savings", e.Field())
	case "budgetperiod":
		return fmt.Sprintf("%s must be one of weekly, monthly, quarterly, yearly", e.Field())
	case "len":
		return fmt.Sprintf("%s must be %s characters long", e.Field(), e.Param())
	default:
		return fmt.Sprintf("%s is invalid", e.Field())
	}
}
