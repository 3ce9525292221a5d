package model

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestProductInStock(t *testing.T) {
	assert.True(t, (&Product{StockQuantity: 3}).InStock())
	assert.False(t, (&Product{StockQuantity: 0}).InStock())
}
