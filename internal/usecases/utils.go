package usecases

import (
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
)

const (
	referencePrefixTransaction = "TXN"
	referencePrefixTransfer    = "TRF"
)

// newReference builds an operation reference such as TRF_1756600000_A1B2C3D4.
// The suffix is random so references stay unique under concurrent creation.
func newReference(prefix string) string {
	shortID := strings.ToUpper(strings.ReplaceAll(uuid.NewString(), "-", "")[:8])
	return fmt.Sprintf("%s_%d_%s", prefix, time.Now().Unix(), shortID)
}
