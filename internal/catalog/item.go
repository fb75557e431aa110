package catalog

import (
	"fmt"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/shopspring/decimal"

	"github.com/angelmondragon/shopfront/pkg/storeapi"
)

// Item is a purchasable catalog record. Items are immutable once fetched.
type Item struct {
	ID       int             `json:"id" validate:"gt=0"`
	Title    string          `json:"title" validate:"required"`
	Price    decimal.Decimal `json:"price" validate:"gte=0"`
	ImageRef string          `json:"imageRef"`
}

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New()
	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		tag := strings.SplitN(f.Tag.Get("json"), ",", 2)[0]
		if tag == "" {
			return f.Name
		}
		return tag
	})
	v.RegisterCustomTypeFunc(func(field reflect.Value) any {
		if d, ok := field.Interface().(decimal.Decimal); ok {
			f, _ := d.Float64()
			return f
		}
		return nil
	}, decimal.Decimal{})
	return v
}

func itemsFromProducts(products []storeapi.Product) ([]Item, error) {
	items := make([]Item, 0, len(products))
	for i, p := range products {
		item := Item{
			ID:       p.ID,
			Title:    strings.TrimSpace(p.Title),
			Price:    p.Price,
			ImageRef: p.Image,
		}
		if err := validate.Struct(item); err != nil {
			return nil, fmt.Errorf("invalid catalog record %d: %s", i, describeValidation(err))
		}
		items = append(items, item)
	}
	return items, nil
}

func describeValidation(err error) string {
	errs, ok := err.(validator.ValidationErrors)
	if !ok {
		return err.Error()
	}
	parts := make([]string, 0, len(errs))
	for _, fe := range errs {
		parts = append(parts, fmt.Sprintf("%s %s", fe.Field(), validationMessage(fe)))
	}
	return strings.Join(parts, ", ")
}

func validationMessage(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return "is required"
	case "gt":
		return fmt.Sprintf("must be greater than %s", fe.Param())
	case "gte":
		return fmt.Sprintf("must be at least %s", fe.Param())
	}
	return "is invalid"
}
