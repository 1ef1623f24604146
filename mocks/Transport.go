package mocks

import (
	"github.com/robmorgan/lcs/dmx"
	"github.com/stretchr/testify/mock"
)

type Transport struct {
	mock.Mock
}

func (_m *Transport) Send(frame *dmx.Frame) error {
	ret := _m.Called(frame)
	return ret.Error(0)
}

func (_m *Transport) Close() error {
	ret := _m.Called()
	return ret.Error(0)
}
