package postgres

import (
	"context"
	"testing"
	"time"

	"github.com/cyberacademydev/cyberevents/internal/domain"
	"github.com/cyberacademydev/cyberevents/internal/testutil"
)

func TestRecordRepository(t *testing.T) {
	pool := testutil.NewTestPool(t)
	repo := NewRecordRepository(pool)
	testutil.ApplyMigrations(t, context.Background(), pool)

	base := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)

	t.Run("Append stores a record and re-append is idempotent", func(t *testing.T) {
		ctx := context.Background()
		testutil.TruncateAll(t, ctx, pool)

		rec := testutil.NewRecord(domain.RecordMint, base)
		rec.EventID = 1
		rec.TicketID = 1
		rec.To = "alice"

		if err := repo.Append(ctx, rec); err != nil {
			t.Fatalf("append: %v", err)
		}
		if err := repo.Append(ctx, rec); err != nil {
			t.Fatalf("re-append the same record: %v", err)
		}

		records, err := repo.List(ctx, 10)
		if err != nil {
			t.Fatalf("list: %v", err)
		}
		if len(records) != 1 {
			t.Fatalf("expected 1 record, got %d", len(records))
		}
		got := records[0]
		if got.ID != rec.ID || got.Kind != domain.RecordMint || got.To != "alice" || got.TicketID != 1 {
			t.Fatalf("unexpected record: %+v", got)
		}
		if !got.OccurredAt.Equal(rec.OccurredAt) {
			t.Fatalf("expected occurred_at %v, got %v", rec.OccurredAt, got.OccurredAt)
		}
	})

	t.Run("List returns newest first and honors the limit", func(t *testing.T) {
		ctx := context.Background()
		testutil.TruncateAll(t, ctx, pool)

		for i := 0; i < 3; i++ {
			rec := testutil.NewRecord(domain.RecordTransfer, base.Add(time.Duration(i)*time.Minute))
			rec.TicketID = uint64(i + 1)
			if err := repo.Append(ctx, rec); err != nil {
				t.Fatalf("append: %v", err)
			}
		}

		records, err := repo.List(ctx, 2)
		if err != nil {
			t.Fatalf("list: %v", err)
		}
		if len(records) != 2 {
			t.Fatalf("expected 2 records, got %d", len(records))
		}
		if records[0].TicketID != 3 || records[1].TicketID != 2 {
			t.Fatalf("expected newest first, got tickets %d, %d", records[0].TicketID, records[1].TicketID)
		}
	})

	t.Run("ListByEvent and ListByTicket filter and keep emission order", func(t *testing.T) {
		ctx := context.Background()
		testutil.TruncateAll(t, ctx, pool)

		mint := testutil.NewRecord(domain.RecordMint, base)
		mint.EventID = 7
		mint.TicketID = 1
		signUp := testutil.NewRecord(domain.RecordSignUp, base.Add(time.Second))
		signUp.EventID = 7
		signUp.TicketID = 1
		other := testutil.NewRecord(domain.RecordMint, base.Add(2*time.Second))
		other.EventID = 8
		other.TicketID = 2

		for _, rec := range []domain.Record{mint, signUp, other} {
			if err := repo.Append(ctx, rec); err != nil {
				t.Fatalf("append: %v", err)
			}
		}

		byEvent, err := repo.ListByEvent(ctx, 7)
		if err != nil {
			t.Fatalf("list by event: %v", err)
		}
		if len(byEvent) != 2 || byEvent[0].Kind != domain.RecordMint || byEvent[1].Kind != domain.RecordSignUp {
			t.Fatalf("unexpected event records: %+v", byEvent)
		}

		byTicket, err := repo.ListByTicket(ctx, 2)
		if err != nil {
			t.Fatalf("list by ticket: %v", err)
		}
		if len(byTicket) != 1 || byTicket[0].ID != other.ID {
			t.Fatalf("unexpected ticket records: %+v", byTicket)
		}
	})
}
