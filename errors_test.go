package vkdev

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	vk "github.com/vulkan-go/vulkan"
)

func TestNewError(t *testing.T) {
	assert.NoError(t, newError(vk.Success))

	err := newError(vk.ErrorOutOfDeviceMemory)
	require.Error(t, err)

	var resErr *ResultError
	require.ErrorAs(t, err, &resErr)
	assert.Equal(t, vk.ErrorOutOfDeviceMemory, resErr.Result())
	assert.Contains(t, err.Error(), "vulkan error:")
}

func TestIsError(t *testing.T) {
	assert.False(t, isError(vk.Success))
	assert.True(t, isError(vk.ErrorDeviceLost))
	assert.True(t, isError(vk.NotReady))
}

func TestOrPanicRunsFinalizers(t *testing.T) {
	ran := false
	fail := func() (err error) {
		defer checkErr(&err)
		orPanic(newError(vk.ErrorInitializationFailed), func() { ran = true })
		return nil
	}

	err := fail()
	require.Error(t, err)
	assert.True(t, ran, "finalizers run before the panic propagates")

	ran = false
	ok := func() (err error) {
		defer checkErr(&err)
		orPanic(newError(vk.Success), func() { ran = true })
		return nil
	}
	require.NoError(t, ok())
	assert.False(t, ran)
}
