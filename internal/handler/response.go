package handler

import (
	"errors"
	"fmt"
	"net/http"

	"storefront/internal/domain/model"
	"storefront/internal/middleware"
	"storefront/internal/policy"
	"storefront/internal/usecase"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
)

// 失敗は常に {error:1, message, fields?} の形
type ErrorResponse struct {
	Error   int               `json:"error"`
	Message string            `json:"message"`
	Fields  map[string]string `json:"fields,omitempty"`
}

// 一覧は {data, count} の形
type ListResponse struct {
	Data  interface{} `json:"data"`
	Count int64       `json:"count"`
}

func errorBody(message string) ErrorResponse {
	return ErrorResponse{Error: 1, Message: message}
}

// c.Validate()のエラーをfields付きのエンベロープへ変換する。
// 鍵はjsonタグのフィールド名
func validationErrorBody(err error) ErrorResponse {
	var ves validator.ValidationErrors
	if !errors.As(err, &ves) {
		return errorBody("validation error")
	}

	fields := make(map[string]string, len(ves))
	for _, fe := range ves {
		fields[fe.Field()] = fieldMessage(fe)
	}
	return ErrorResponse{Error: 1, Message: "validation error", Fields: fields}
}

func fieldMessage(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return fmt.Sprintf("%s is required", fe.Field())
	case "email":
		return fmt.Sprintf("%s must be a valid email address", fe.Field())
	case "min":
		return fmt.Sprintf("%s must be at least %s", fe.Field(), fe.Param())
	case "max":
		return fmt.Sprintf("%s must be at most %s", fe.Field(), fe.Param())
	case "gt":
		return fmt.Sprintf("%s must be greater than %s", fe.Field(), fe.Param())
	case "gte":
		return fmt.Sprintf("%s must be at least %s", fe.Field(), fe.Param())
	default:
		return fmt.Sprintf("%s is invalid", fe.Field())
	}
}

// usecaseのHTTPErrorをステータスとエンベロープへ変換する
func writeError(c echo.Context, err error) error {
	if err == nil {
		return nil
	}
	if he, ok := usecase.AsHTTPError(err); ok {
		return c.JSON(he.Status, ErrorResponse{Error: 1, Message: he.Message, Fields: he.Fields})
	}

	//500
	return c.JSON(http.StatusInternalServerError, errorBody("internal error"))
}

// AuthJWTがcontextへ入れたuser_idを取り出す
func getUserIDFromContext(c echo.Context) (int64, bool) {
	userID, ok := c.Get(middleware.CtxUserIDKey).(int64)
	if !ok || userID <= 0 {
		return 0, false
	}
	return userID, true
}

// policy判定用のactorを組み立てる
func getActorFromContext(c echo.Context) (policy.Actor, bool) {
	userID, ok := getUserIDFromContext(c)
	if !ok {
		return policy.Actor{}, false
	}
	role, ok := c.Get(middleware.CtxUserRoleKey).(string)
	if !ok || role == "" {
		return policy.Actor{}, false
	}
	return policy.Actor{UserID: userID, Role: model.Role(role)}, true
}
