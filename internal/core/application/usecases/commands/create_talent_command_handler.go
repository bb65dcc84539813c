package commands

import (
	"context"

	"commissions/internal/core/domain/model/talent"
)

// CreateTalentCommandHandler persists a new producer.
type CreateTalentCommandHandler struct {
	uowFactory TalentUoWFactory
}

func NewCreateTalentCommandHandler(uowFactory TalentUoWFactory) CreateTalentCommandHandler {
	return CreateTalentCommandHandler{
		uowFactory: uowFactory,
	}
}

func (h *CreateTalentCommandHandler) Handle(ctx context.Context, cmd CreateTalentCommand) (*talent.Talent, error) {
	if err := cmd.Validate(); err != nil {
		return nil, err
	}

	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return nil, err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	t, err := talent.NewTalent(cmd.TalentID(), cmd.Name(), cmd.Email(), cmd.ProductLines(), cmd.Capacity())
	if err != nil {
		return nil, err
	}

	if err = uow.TalentRepository().Add(ctx, t); err != nil {
		return nil, err
	}

	if err = uow.Commit(ctx); err != nil {
		return nil, err
	}

	return t, nil
}
