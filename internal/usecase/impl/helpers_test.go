package impl

import (
	"bytes"
	"io"
	"log/slog"
	"math/rand/v2"
	"sync"

	"dropradar/config"
	"dropradar/internal/domain/entity"
)

func newDiscardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

// syncBuffer lets concurrent workers share one log sink.
type syncBuffer struct {
	mu  sync.Mutex
	buf bytes.Buffer
}

func (b *syncBuffer) Write(p []byte) (int, error) {
	b.mu.Lock()
	defer b.mu.Unlock()

	return b.buf.Write(p)
}

func (b *syncBuffer) String() string {
	b.mu.Lock()
	defer b.mu.Unlock()

	return b.buf.String()
}

type stubCatalog struct{}

func (stubCatalog) Draw(rng *rand.Rand) (entity.DropType, []entity.RewardRef) {
	return entity.DropTypeCard, []entity.RewardRef{
		{Kind: "card", RefID: "card-001", Rarity: "common", Quantity: 1 + rng.IntN(2)},
	}
}

func createTestConfig() *config.Config {
	cfg := &config.Config{}
	config.ApplyDefaults(cfg)

	return cfg
}

func newSeededRand() *rand.Rand {
	return rand.New(rand.NewPCG(1, 2))
}
