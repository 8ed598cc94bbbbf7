package commands_test

import (
	"testing"
	"time"

	"foodorder/internal/core/application/usecases/commands"
	"foodorder/internal/core/domain/model/kernel"
	"foodorder/internal/core/domain/model/partner"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func TestRegisterPartnerCommandHandler_Handle_Success(t *testing.T) {
	ctx := t.Context()

	partnerID := kernel.NewUUID()
	cmd, err := commands.NewRegisterPartnerCommand(partnerID, "Ravi Kumar", "+919800000001", partner.VehicleBike)
	require.NoError(t, err)

	partnerRepo := new(MockPartnerRepository)
	uow := new(MockUoW)
	uow.On("PartnerRepository").Return(partnerRepo)

	mock.InOrder(
		uow.On("Begin", ctx).Return(nil).Once(),
		partnerRepo.On("Add", ctx, mock.AnythingOfType("*partner.DeliveryPartner")).Return(nil).Once(),
		uow.On("Commit", ctx).Return(nil).Once(),
		uow.On("Rollback", ctx).Return(nil).Once(),
	)

	factory := new(MockPartnerUoWFactory)
	factory.On("Create").Return(uow).Once()

	handler := commands.NewRegisterPartnerCommandHandler(factory, testLogger())
	registered, err := handler.Handle(ctx, cmd)

	require.NoError(t, err)
	assert.True(t, registered.ID().IsEqual(partnerID))
	assert.True(t, registered.IsAvailable())
	assert.Zero(t, registered.CurrentDeliveries())

	partnerRepo.AssertExpectations(t)
	uow.AssertExpectations(t)
}

func TestNewRegisterPartnerCommand_Validation(t *testing.T) {
	_, err := commands.NewRegisterPartnerCommand(kernel.NewUUID(), "", "+919800000001", partner.VehicleBike)
	require.Error(t, err)

	_, err = commands.NewRegisterPartnerCommand(kernel.NewUUID(), "Ravi", "", partner.VehicleBike)
	require.Error(t, err)

	_, err = commands.NewRegisterPartnerCommand(kernel.NewUUID(), "Ravi", "+919800000001", partner.VehicleType("truck"))
	require.Error(t, err)
}

func TestSetPartnerAvailabilityCommandHandler_Handle_Success(t *testing.T) {
	ctx := t.Context()

	tracked := fixturePartner(t, "Ravi Kumar")
	cmd, err := commands.NewSetPartnerAvailabilityCommand(tracked.ID(), false)
	require.NoError(t, err)

	partnerRepo := new(MockPartnerRepository)
	uow := new(MockUoW)
	uow.On("PartnerRepository").Return(partnerRepo)

	mock.InOrder(
		uow.On("Begin", ctx).Return(nil).Once(),
		partnerRepo.On("Get", ctx, tracked.ID()).Return(tracked, nil).Once(),
		partnerRepo.On("Update", ctx, mock.AnythingOfType("*partner.DeliveryPartner")).Return(nil).Once(),
		uow.On("Commit", ctx).Return(nil).Once(),
		uow.On("Rollback", ctx).Return(nil).Once(),
	)

	factory := new(MockPartnerUoWFactory)
	factory.On("Create").Return(uow).Once()

	handler := commands.NewSetPartnerAvailabilityCommandHandler(factory, testLogger())
	updated, err := handler.Handle(ctx, cmd)

	require.NoError(t, err)
	assert.False(t, updated.IsAvailable())
	partnerRepo.AssertExpectations(t)
}

func TestRemovePartnerCommandHandler_Handle_Success(t *testing.T) {
	ctx := t.Context()

	tracked := fixturePartner(t, "Ravi Kumar")
	cmd, err := commands.NewRemovePartnerCommand(tracked.ID())
	require.NoError(t, err)

	partnerRepo := new(MockPartnerRepository)
	uow := new(MockUoW)
	uow.On("PartnerRepository").Return(partnerRepo)

	mock.InOrder(
		uow.On("Begin", ctx).Return(nil).Once(),
		partnerRepo.On("Get", ctx, tracked.ID()).Return(tracked, nil).Once(),
		partnerRepo.On("Delete", ctx, tracked.ID()).Return(nil).Once(),
		uow.On("Commit", ctx).Return(nil).Once(),
		uow.On("Rollback", ctx).Return(nil).Once(),
	)

	factory := new(MockPartnerUoWFactory)
	factory.On("Create").Return(uow).Once()

	handler := commands.NewRemovePartnerCommandHandler(factory, testLogger())
	require.NoError(t, handler.Handle(ctx, cmd))
	partnerRepo.AssertExpectations(t)
}

func TestRemovePartnerCommandHandler_Handle_ActiveDeliveriesBlockRemoval(t *testing.T) {
	ctx := t.Context()

	tracked := fixturePartner(t, "Ravi Kumar")
	require.NoError(t, tracked.MarkAssigned(time.Now(), 15*time.Minute))

	cmd, err := commands.NewRemovePartnerCommand(tracked.ID())
	require.NoError(t, err)

	partnerRepo := new(MockPartnerRepository)
	uow := new(MockUoW)
	uow.On("PartnerRepository").Return(partnerRepo)

	mock.InOrder(
		uow.On("Begin", ctx).Return(nil).Once(),
		partnerRepo.On("Get", ctx, tracked.ID()).Return(tracked, nil).Once(),
		uow.On("Rollback", ctx).Return(nil).Once(),
	)

	factory := new(MockPartnerUoWFactory)
	factory.On("Create").Return(uow).Once()

	handler := commands.NewRemovePartnerCommandHandler(factory, testLogger())
	err = handler.Handle(ctx, cmd)

	require.ErrorIs(t, err, partner.ErrPartnerHasActiveDeliveries)
	partnerRepo.AssertNotCalled(t, "Delete", ctx, mock.Anything)
}
