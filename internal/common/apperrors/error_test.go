package apperrors

import (
	"fmt"
	"testing"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
)

func TestError(t *testing.T) {
	t.Run("TestError", func(t *testing.T) {
		ErrBase := New("remote control error")
		assert.Equal(t, "remote control error", ErrBase.Error())
		assert.Equal(t, "msg", ErrBase.New("msg").Error())
		assert.ErrorIs(t, ErrBase, ErrBase)

		ErrStatus := ErrBase.New("survey status error")
		assert.Equal(t, "survey status error", ErrStatus.Error())
		assert.ErrorIs(t, ErrStatus, ErrBase)

		ErrTransport := New("transport error")
		ErrTransportMsg := ErrTransport.Msg("connection reset")
		ErrDecode := New("decode error")
		ErrDecodeMsg := ErrDecode.Msg("truncated body")
		ErrWrapped := ErrStatus.Err(ErrTransportMsg, ErrDecodeMsg)
		assert.Equal(t, "survey status error", ErrWrapped.Error())
		assert.ErrorIs(t, ErrWrapped, ErrBase)
		assert.ErrorIs(t, ErrWrapped, ErrStatus)
		assert.ErrorIs(t, ErrWrapped, ErrTransport)
		assert.ErrorIs(t, ErrWrapped, ErrTransportMsg)
		assert.ErrorIs(t, ErrWrapped, ErrDecode)
		assert.ErrorIs(t, ErrWrapped, ErrDecodeMsg)

		err := errors.New("socket closed")
		ErrWrapped = ErrStatus.Err(err)
		assert.Equal(t, "survey status error", ErrWrapped.Error())
		assert.ErrorIs(t, ErrWrapped, ErrBase)
		assert.ErrorIs(t, ErrWrapped, err)

		ErrWrapped = ErrStatus.MsgErr("msg", err)
		assert.Equal(t, "msg", ErrWrapped.Error())
		assert.ErrorIs(t, ErrWrapped, ErrBase)
		assert.ErrorIs(t, ErrWrapped, err)

		ErrGoErr := fmt.Errorf("first failure")
		ErrAnotherGoErr := fmt.Errorf("second failure")
		ErrWrappedGo := ErrStatus.Err(ErrGoErr, ErrAnotherGoErr)
		assert.Equal(t, "survey status error", ErrWrappedGo.Error())
		assert.ErrorIs(t, ErrWrappedGo, ErrBase)
		assert.ErrorIs(t, ErrWrappedGo, ErrGoErr)
		assert.ErrorIs(t, ErrWrappedGo, ErrAnotherGoErr)
		assert.Len(t, ErrWrappedGo.UnwrapAll(), 3)
	})
}
