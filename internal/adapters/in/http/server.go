// Package http exposes the commissions use cases over a JSON API served
// by echo. Routes and request shapes follow the embedded OpenAPI document.
package http

import (
	"net/http"

	"commissions/internal/core/application/usecases/commands"
	"commissions/internal/core/application/usecases/queries"
	"commissions/internal/core/domain/model/kernel"
	"commissions/internal/core/domain/model/order"

	"github.com/labstack/echo/v4"
	openapi_types "github.com/oapi-codegen/runtime/types"
)

// Server implements ServerInterface on top of the command and query handlers.
type Server struct {
	// Command handlers
	createOrderHandler       commands.CreateOrderCommandHandler
	confirmPaymentHandler    commands.ConfirmPaymentCommandHandler
	transitionOrderHandler   commands.TransitionOrderCommandHandler
	checkAutoCompleteHandler commands.CheckAutoCompleteCommandHandler
	postMessageHandler       commands.PostMessageCommandHandler
	issueCertificateHandler  commands.IssueCertificateCommandHandler
	createTalentHandler      commands.CreateTalentCommandHandler

	// Query handlers
	getQuoteHandler       queries.GetQuoteQueryHandler
	listMessagesHandler   queries.ListMessagesQueryHandler
	getCertificateHandler queries.GetCertificateQueryHandler
	getAllTalentsHandler  queries.GetAllTalentsQueryHandler
}

// Handlers groups the use cases the server delegates to.
type Handlers struct {
	CreateOrder       commands.CreateOrderCommandHandler
	ConfirmPayment    commands.ConfirmPaymentCommandHandler
	TransitionOrder   commands.TransitionOrderCommandHandler
	CheckAutoComplete commands.CheckAutoCompleteCommandHandler
	PostMessage       commands.PostMessageCommandHandler
	IssueCertificate  commands.IssueCertificateCommandHandler
	CreateTalent      commands.CreateTalentCommandHandler

	GetQuote       queries.GetQuoteQueryHandler
	ListMessages   queries.ListMessagesQueryHandler
	GetCertificate queries.GetCertificateQueryHandler
	GetAllTalents  queries.GetAllTalentsQueryHandler
}

func NewServer(h Handlers) *Server {
	return &Server{
		createOrderHandler:       h.CreateOrder,
		confirmPaymentHandler:    h.ConfirmPayment,
		transitionOrderHandler:   h.TransitionOrder,
		checkAutoCompleteHandler: h.CheckAutoComplete,
		postMessageHandler:       h.PostMessage,
		issueCertificateHandler:  h.IssueCertificate,
		createTalentHandler:      h.CreateTalent,
		getQuoteHandler:          h.GetQuote,
		listMessagesHandler:      h.ListMessages,
		getCertificateHandler:    h.GetCertificate,
		getAllTalentsHandler:     h.GetAllTalents,
	}
}

// bindAndValidate decodes the body into req and runs the struct validator.
// The returned message is suitable for a 400 response.
func bindAndValidate(ctx echo.Context, req any) (string, bool) {
	if err := ctx.Bind(req); err != nil {
		return "Invalid request body", false
	}
	if err := ctx.Validate(req); err != nil {
		return validationMessage(err), false
	}
	return "", true
}

func orderIDFromPath(id openapi_types.UUID) (kernel.UUID, error) {
	return kernel.UUIDFromBytes(id[:])
}

// GetQuote handles POST /api/v1/quotes.
func (s *Server) GetQuote(ctx echo.Context) error {
	var req QuoteRequest
	if msg, ok := bindAndValidate(ctx, &req); !ok {
		return badRequest(ctx, msg)
	}

	query, err := queries.NewGetQuoteQuery(queries.GetQuoteParams{
		ProductLine:           req.ProductLine,
		Tier:                  req.Tier,
		Units:                 req.EstimatedUnits,
		RightsLevel:           req.RightsLevel,
		LegacyBroadcastRights: req.BroadcastRights,
		AddOns:                req.AddOns,
		PromoCode:             req.PromoCode,
	})
	if err != nil {
		return writeError(ctx, err)
	}

	quote, err := s.getQuoteHandler.Handle(ctx.Request().Context(), query)
	if err != nil {
		return writeError(ctx, err)
	}

	return ctx.JSON(http.StatusOK, toQuote(quote))
}

// CreateOrder handles POST /api/v1/orders.
func (s *Server) CreateOrder(ctx echo.Context) error {
	var req CreateOrderRequest
	if msg, ok := bindAndValidate(ctx, &req); !ok {
		return badRequest(ctx, msg)
	}

	cmd, err := commands.NewCreateOrderCommand(commands.CreateOrderParams{
		OrderID:               kernel.NewUUID(),
		ClientEmail:           req.ClientEmail,
		ProductLine:           req.ProductLine,
		Tier:                  req.Tier,
		Units:                 req.EstimatedUnits,
		RightsLevel:           req.RightsLevel,
		LegacyBroadcastRights: req.BroadcastRights,
		AddOns:                req.AddOns,
		PromoCode:             req.PromoCode,
	})
	if err != nil {
		return writeError(ctx, err)
	}

	o, err := s.createOrderHandler.Handle(ctx.Request().Context(), cmd)
	if err != nil {
		return writeError(ctx, err)
	}

	return ctx.JSON(http.StatusCreated, toOrder(o))
}

// GetOrder handles GET /api/v1/orders/{orderId}. Reading an orchestra order
// past its review window completes it.
func (s *Server) GetOrder(ctx echo.Context, orderID openapi_types.UUID) error {
	id, err := orderIDFromPath(orderID)
	if err != nil {
		return writeError(ctx, err)
	}

	cmd, err := commands.NewCheckAutoCompleteCommand(id)
	if err != nil {
		return writeError(ctx, err)
	}

	o, err := s.checkAutoCompleteHandler.Handle(ctx.Request().Context(), cmd)
	if err != nil {
		return writeError(ctx, err)
	}

	return ctx.JSON(http.StatusOK, toOrder(o))
}

// ConfirmPayment handles POST /api/v1/orders/{orderId}/payment.
func (s *Server) ConfirmPayment(ctx echo.Context, orderID openapi_types.UUID) error {
	var req ConfirmPaymentRequest
	if msg, ok := bindAndValidate(ctx, &req); !ok {
		return badRequest(ctx, msg)
	}

	id, err := orderIDFromPath(orderID)
	if err != nil {
		return writeError(ctx, err)
	}

	cmd, err := commands.NewConfirmPaymentCommand(id, req.PaymentRef)
	if err != nil {
		return writeError(ctx, err)
	}

	o, err := s.confirmPaymentHandler.Handle(ctx.Request().Context(), cmd)
	if err != nil {
		return writeError(ctx, err)
	}

	return ctx.JSON(http.StatusOK, toOrder(o))
}

// TransitionOrder handles POST /api/v1/orders/{orderId}/transitions.
func (s *Server) TransitionOrder(ctx echo.Context, orderID openapi_types.UUID) error {
	var req TransitionRequest
	if msg, ok := bindAndValidate(ctx, &req); !ok {
		return badRequest(ctx, msg)
	}

	id, err := orderIDFromPath(orderID)
	if err != nil {
		return writeError(ctx, err)
	}

	cmd, err := commands.NewTransitionOrderCommand(id, req.Event, order.Payload{
		Feedback:              req.Feedback,
		Ref:                   req.Ref,
		Notes:                 req.Notes,
		EstimatedDeliveryDate: req.EstimatedDeliveryDate,
	})
	if err != nil {
		return writeError(ctx, err)
	}

	o, err := s.transitionOrderHandler.Handle(ctx.Request().Context(), cmd)
	if err != nil {
		return writeError(ctx, err)
	}

	return ctx.JSON(http.StatusOK, toOrder(o))
}

// ListMessages handles GET /api/v1/orders/{orderId}/messages.
func (s *Server) ListMessages(ctx echo.Context, orderID openapi_types.UUID) error {
	id, err := orderIDFromPath(orderID)
	if err != nil {
		return writeError(ctx, err)
	}

	query, err := queries.NewListMessagesQuery(id)
	if err != nil {
		return writeError(ctx, err)
	}

	messages, err := s.listMessagesHandler.Handle(ctx.Request().Context(), query)
	if err != nil {
		return writeError(ctx, err)
	}

	response := make([]Message, len(messages))
	for i, m := range messages {
		response[i] = Message{
			ID:          m.ID.String(),
			AuthorRole:  m.AuthorRole,
			AuthorEmail: m.AuthorEmail,
			Body:        m.Body,
			CreatedAt:   m.CreatedAt,
		}
	}

	return ctx.JSON(http.StatusOK, response)
}

// PostMessage handles POST /api/v1/orders/{orderId}/messages.
func (s *Server) PostMessage(ctx echo.Context, orderID openapi_types.UUID) error {
	var req PostMessageRequest
	if msg, ok := bindAndValidate(ctx, &req); !ok {
		return badRequest(ctx, msg)
	}

	id, err := orderIDFromPath(orderID)
	if err != nil {
		return writeError(ctx, err)
	}

	cmd, err := commands.NewPostMessageCommand(id, req.AuthorRole, req.AuthorEmail, req.Body)
	if err != nil {
		return writeError(ctx, err)
	}

	m, err := s.postMessageHandler.Handle(ctx.Request().Context(), cmd)
	if err != nil {
		return writeError(ctx, err)
	}

	return ctx.JSON(http.StatusCreated, toMessage(m))
}

// GetCertificate handles GET /api/v1/orders/{orderId}/certificate.
func (s *Server) GetCertificate(ctx echo.Context, orderID openapi_types.UUID) error {
	id, err := orderIDFromPath(orderID)
	if err != nil {
		return writeError(ctx, err)
	}

	query, err := queries.NewGetCertificateQuery(id)
	if err != nil {
		return writeError(ctx, err)
	}

	cert, err := s.getCertificateHandler.Handle(ctx.Request().Context(), query)
	if err != nil {
		return writeError(ctx, err)
	}

	return ctx.JSON(http.StatusOK, fromCertificateQuery(cert))
}

// IssueCertificate handles POST /api/v1/orders/{orderId}/certificate.
func (s *Server) IssueCertificate(ctx echo.Context, orderID openapi_types.UUID) error {
	var req IssueCertificateRequest
	if msg, ok := bindAndValidate(ctx, &req); !ok {
		return badRequest(ctx, msg)
	}

	id, err := orderIDFromPath(orderID)
	if err != nil {
		return writeError(ctx, err)
	}

	cmd, err := commands.NewIssueCertificateCommand(id, req.VoiceAffidavitRef)
	if err != nil {
		return writeError(ctx, err)
	}

	cert, err := s.issueCertificateHandler.Handle(ctx.Request().Context(), cmd)
	if err != nil {
		return writeError(ctx, err)
	}

	return ctx.JSON(http.StatusCreated, toCertificate(cert))
}

// GetTalents handles GET /api/v1/talents.
func (s *Server) GetTalents(ctx echo.Context) error {
	talents, err := s.getAllTalentsHandler.Handle(ctx.Request().Context(), queries.NewGetAllTalentsQuery())
	if err != nil {
		return writeError(ctx, err)
	}

	response := make([]Talent, len(talents))
	for i, t := range talents {
		lines := make([]string, len(t.ProductLines))
		for j, pl := range t.ProductLines {
			lines[j] = pl.String()
		}
		response[i] = Talent{
			ID:           t.ID.String(),
			Name:         t.Name,
			Email:        t.Email,
			ProductLines: lines,
			Capacity:     t.Capacity,
			ActiveOrders: t.ActiveOrders,
		}
	}

	return ctx.JSON(http.StatusOK, response)
}

// CreateTalent handles POST /api/v1/talents.
func (s *Server) CreateTalent(ctx echo.Context) error {
	var req CreateTalentRequest
	if msg, ok := bindAndValidate(ctx, &req); !ok {
		return badRequest(ctx, msg)
	}

	cmd, err := commands.NewCreateTalentCommand(req.Name, req.Email, req.ProductLines, req.Capacity)
	if err != nil {
		return writeError(ctx, err)
	}

	t, err := s.createTalentHandler.Handle(ctx.Request().Context(), cmd)
	if err != nil {
		return writeError(ctx, err)
	}

	return ctx.JSON(http.StatusCreated, toTalent(t))
}
