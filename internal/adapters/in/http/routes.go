package http

import (
	"fmt"
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/oapi-codegen/runtime"
	openapi_types "github.com/oapi-codegen/runtime/types"
)

// ServerInterface lists the operations of the embedded OpenAPI document.
type ServerInterface interface {
	GetQuote(ctx echo.Context) error
	CreateOrder(ctx echo.Context) error
	GetOrder(ctx echo.Context, orderID openapi_types.UUID) error
	ConfirmPayment(ctx echo.Context, orderID openapi_types.UUID) error
	TransitionOrder(ctx echo.Context, orderID openapi_types.UUID) error
	ListMessages(ctx echo.Context, orderID openapi_types.UUID) error
	PostMessage(ctx echo.Context, orderID openapi_types.UUID) error
	GetCertificate(ctx echo.Context, orderID openapi_types.UUID) error
	IssueCertificate(ctx echo.Context, orderID openapi_types.UUID) error
	GetTalents(ctx echo.Context) error
	CreateTalent(ctx echo.Context) error
}

// EchoRouter is the subset of *echo.Echo and *echo.Group used for registration.
type EchoRouter interface {
	GET(path string, h echo.HandlerFunc, m ...echo.MiddlewareFunc) *echo.Route
	POST(path string, h echo.HandlerFunc, m ...echo.MiddlewareFunc) *echo.Route
}

// ServerInterfaceWrapper binds path parameters before delegating.
type ServerInterfaceWrapper struct {
	Handler ServerInterface
}

func (w *ServerInterfaceWrapper) withOrderID(
	call func(echo.Context, openapi_types.UUID) error,
) echo.HandlerFunc {
	return func(ctx echo.Context) error {
		var orderID openapi_types.UUID

		err := runtime.BindStyledParameterWithOptions("simple", "orderId", ctx.Param("orderId"), &orderID,
			runtime.BindStyledParameterOptions{ParamLocation: runtime.ParamLocationPath, Explode: false, Required: true})
		if err != nil {
			return ctx.JSON(http.StatusBadRequest, Error{
				Code:    codeValidation,
				Message: fmt.Sprintf("Invalid format for parameter orderId: %s", err),
			})
		}

		return call(ctx, orderID)
	}
}

// RegisterHandlers mounts every operation under /api/v1.
func RegisterHandlers(router EchoRouter, si ServerInterface) {
	w := &ServerInterfaceWrapper{Handler: si}

	router.POST("/api/v1/quotes", si.GetQuote)
	router.POST("/api/v1/orders", si.CreateOrder)
	router.GET("/api/v1/orders/:orderId", w.withOrderID(si.GetOrder))
	router.POST("/api/v1/orders/:orderId/payment", w.withOrderID(si.ConfirmPayment))
	router.POST("/api/v1/orders/:orderId/transitions", w.withOrderID(si.TransitionOrder))
	router.GET("/api/v1/orders/:orderId/messages", w.withOrderID(si.ListMessages))
	router.POST("/api/v1/orders/:orderId/messages", w.withOrderID(si.PostMessage))
	router.GET("/api/v1/orders/:orderId/certificate", w.withOrderID(si.GetCertificate))
	router.POST("/api/v1/orders/:orderId/certificate", w.withOrderID(si.IssueCertificate))
	router.GET("/api/v1/talents", si.GetTalents)
	router.POST("/api/v1/talents", si.CreateTalent)
}
