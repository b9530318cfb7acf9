package interactive_test

import (
	"github.com/stretchr/testify/mock"

	"github.com/udisondev/openworld/internal/model"
)

type busMock struct {
	mock.Mock
}

func (m *busMock) TriggerEvent(target, source string) {
	m.Called(target, source)
}

func (m *busMock) PassivePerception(who model.ObjectID, perception string) {
	m.Called(who, perception)
}

type scriptsMock struct {
	mock.Mock
}

func (m *scriptsMock) UseInteractive(who model.ObjectID, function string) {
	m.Called(who, function)
}

func (m *scriptsMock) DialogFinished() bool {
	return m.Called().Bool(0)
}
