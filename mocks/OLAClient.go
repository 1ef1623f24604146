package mocks

import "github.com/stretchr/testify/mock"

type OLAClient struct {
	mock.Mock
}

func (_m *OLAClient) SendDmx(universe int, values []byte) (bool, error) {
	ret := _m.Called(universe, values)
	return ret.Bool(0), ret.Error(1)
}

func (_m *OLAClient) Close() {
	_m.Called()
}
