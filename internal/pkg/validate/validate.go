package validate

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"reflect"
	"strings"
	"sync"

	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/locales/en"
	ut "github.com/go-playground/universal-translator"
	"github.com/go-playground/validator/v10"
	enTranslations "github.com/go-playground/validator/v10/translations/en"
)

var (
	plain = validator.New()

	setupOnce sync.Once
	setupErr  error
	trans     ut.Translator
)

// Setup registers the json tag name func, the notblank rule and English
// messages on gin's binding validator. It is safe to call more than once.
func Setup() error {
	setupOnce.Do(func() {
		v, ok := binding.Validator.Engine().(*validator.Validate)
		if !ok {
			setupErr = errors.New("gin binding engine is not go-playground/validator")
			return
		}
		setupErr = register(v)
	})
	return setupErr
}

func register(v *validator.Validate) error {
	enLocale := en.New()
	uni := ut.New(enLocale, enLocale)
	trans, _ = uni.GetTranslator("en")
	if err := enTranslations.RegisterDefaultTranslations(v, trans); err != nil {
		return fmt.Errorf("register default translations: %w", err)
	}

	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		for _, tag := range []string{"json", "form"} {
			name := strings.SplitN(fld.Tag.Get(tag), ",", 2)[0]
			if name == "-" {
				return ""
			}
			if name != "" {
				return name
			}
		}
		return fld.Name
	})

	if err := v.RegisterValidation("notblank", notBlank); err != nil {
		return fmt.Errorf("register notblank: %w", err)
	}
	if err := v.RegisterTranslation("notblank", trans, func(ut ut.Translator) error {
		return ut.Add("notblank", "{0} must not be blank", true)
	}, func(ut ut.Translator, fe validator.FieldError) string {
		t, _ := ut.T("notblank", fe.Field())
		return t
	}); err != nil {
		return fmt.Errorf("register notblank translation: %w", err)
	}
	return nil
}

func notBlank(fl validator.FieldLevel) bool {
	field := fl.Field()
	for field.Kind() == reflect.Ptr {
		if field.IsNil() {
			return true
		}
		field = field.Elem()
	}
	if field.Kind() != reflect.String {
		return true
	}
	return strings.TrimSpace(field.String()) != ""
}

// Message turns a binding error into a single readable sentence.
func Message(err error) string {
	var verrs validator.ValidationErrors
	if errors.As(err, &verrs) {
		msgs := make([]string, 0, len(verrs))
		for _, fe := range verrs {
			if trans != nil {
				msgs = append(msgs, fe.Translate(trans))
			} else {
				msgs = append(msgs, fe.Error())
			}
		}
		return strings.Join(msgs, "; ")
	}

	var syntaxErr *json.SyntaxError
	if errors.As(err, &syntaxErr) {
		return "malformed JSON body"
	}
	var typeErr *json.UnmarshalTypeError
	if errors.As(err, &typeErr) {
		return fmt.Sprintf("%s must be of type %s", typeErr.Field, typeErr.Type.String())
	}
	if errors.Is(err, io.EOF) {
		return "request body is required"
	}
	return err.Error()
}

// Email reports whether s is a syntactically valid address.
func Email(s string) bool {
	return plain.Var(s, "required,email,max=191") == nil
}
