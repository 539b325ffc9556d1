package apierrors

import (
	"fmt"
	"taskboard/pkg/translator"

	"github.com/nicksnyder/go-i18n/v2/i18n"
	"go.uber.org/zap"
)

// JsonErr represents the JSON structure for apierrors.
type JsonErr struct {
	ErrDetails Err `json:"error"`
}

// Err represents the error with a code and message. Fields carries one
// translated message per invalid form field.
type Err struct {
	Code    int               `json:"code"`
	Message string            `json:"message"`
	Fields  map[string]string `json:"fields,omitempty"`
}

// Error implements the error interface for JsonErr.
func (e JsonErr) Error() string {
	return fmt.Sprintf("Code: %d, Message: %s", e.ErrDetails.Code, e.ErrDetails.Message)
}

// CreateError generates a JsonErr with a translated message.
func CreateError(code int, msgKey string, lang string) JsonErr {
	message := GetTransErrorMsg(msgKey, lang)
	return JsonErr{ErrDetails: Err{Code: code, Message: message}}
}

// CreateFieldsError generates a JsonErr whose per-field message keys are translated too.
func CreateFieldsError(code int, msgKey string, fieldKeys map[string]string, lang string) JsonErr {
	jsonErr := CreateError(code, msgKey, lang)
	if len(fieldKeys) == 0 {
		return jsonErr
	}
	jsonErr.ErrDetails.Fields = make(map[string]string, len(fieldKeys))
	for field, key := range fieldKeys {
		jsonErr.ErrDetails.Fields[field] = GetTransErrorMsg(key, lang)
	}
	return jsonErr
}

// GetTransErrorMsg retrieves the translated error message.
func GetTransErrorMsg(msgKey string, lang string) string {
	l := i18n.NewLocalizer(translator.Translator, lang, "en")
	m := i18n.LocalizeConfig{}
	m.MessageID = msgKey
	msg, err := l.Localize(&m)
	if err != nil {
		zap.L().Warn("translation not found", zap.String("lang", lang), zap.String("message_id", msgKey), zap.Error(err))
		return msgKey
	}
	return msg
}
