package usecase

import (
	"github.com/checkstat-dev/checkstat/pkg/domain/model"
	"github.com/checkstat-dev/checkstat/pkg/infra"
)

type UseCase struct {
	clients *infra.Clients

	// deviceNotify shows the user code and verification URL when the
	// device authorization flow starts. Presentation belongs to the
	// caller, so it is injected.
	deviceNotify DeviceNotify
}

type DeviceNotify func(code *model.DeviceCode)

type Option func(*UseCase)

func WithDeviceNotify(notify DeviceNotify) Option {
	return func(x *UseCase) {
		x.deviceNotify = notify
	}
}

func New(clients *infra.Clients, options ...Option) *UseCase {
	uc := &UseCase{
		clients: clients,
	}

	for _, opt := range options {
		opt(uc)
	}

	return uc
}
