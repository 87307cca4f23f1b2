package services

import (
	"testing"

	"motormandi_go/models"

	"github.com/stretchr/testify/assert"
)

func TestOrderTransitions(t *testing.T) {
	// pending orders are decided by the seller, cancellable by the buyer
	assert.Equal(t, "seller", orderTransitions[models.OrderPending][models.OrderAccepted])
	assert.Equal(t, "seller", orderTransitions[models.OrderPending][models.OrderRejected])
	assert.Equal(t, "buyer", orderTransitions[models.OrderPending][models.OrderCancelled])

	// accepted orders can complete (seller) or still be cancelled (buyer)
	assert.Equal(t, "seller", orderTransitions[models.OrderAccepted][models.OrderCompleted])
	assert.Equal(t, "buyer", orderTransitions[models.OrderAccepted][models.OrderCancelled])

	// terminal states allow no further moves
	for _, terminal := range []string{models.OrderRejected, models.OrderCompleted, models.OrderCancelled} {
		assert.Empty(t, orderTransitions[terminal])
	}

	// no skipping straight from pending to completed
	_, ok := orderTransitions[models.OrderPending][models.OrderCompleted]
	assert.False(t, ok)
}
