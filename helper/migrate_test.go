package helper_test

import (
	"saleema/config"
	"saleema/helper"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRun_RejectsUnknownAction(t *testing.T) {
	err := helper.Run(&config.Config{}, "sideways")

	assert.ErrorIs(t, err, helper.ErrUnknownAction)
}
