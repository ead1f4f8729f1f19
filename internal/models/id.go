package models

import (
	"encoding/hex"
	"fmt"

	"github.com/google/uuid"
)

// newDocumentID builds ids of the form "<prefix>_<epoch_ms>_<8 hex chars>",
// e.g. "conv_1718000000000_9f86d081".
func newDocumentID(prefix string, epochMillis int64) string {
	u := uuid.New()
	return fmt.Sprintf("%s_%d_%s", prefix, epochMillis, hex.EncodeToString(u[:4]))
}
