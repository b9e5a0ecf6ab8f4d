package memory

import (
	"testing"

	"github.com/vitaehq/converse/pkg/ports"
)

func TestStoreContract(t *testing.T) {
	ports.RunStateStoreContract(t, NewStore())
}
