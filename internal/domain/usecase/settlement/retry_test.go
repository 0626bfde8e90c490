package settlement

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestRetryPolicyBackoff(t *testing.T) {
	policy := RetryPolicy{BaseInterval: 100 * time.Millisecond, MaxInterval: time.Second}

	assert.Equal(t, 100*time.Millisecond, policy.Backoff(0))
	assert.Equal(t, 100*time.Millisecond, policy.Backoff(1))
	assert.Equal(t, 200*time.Millisecond, policy.Backoff(2))
	assert.Equal(t, 800*time.Millisecond, policy.Backoff(4))
	assert.Equal(t, time.Second, policy.Backoff(10))

	policy.JitterFactor = 0.5
	for i := 0; i < 20; i++ {
		d := policy.Backoff(2)
		assert.GreaterOrEqual(t, d, 200*time.Millisecond)
		assert.LessOrEqual(t, d, 300*time.Millisecond)
	}
}
