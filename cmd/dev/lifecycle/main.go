package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"time"

	"wedding-booking/internal/domain/booking"
	"wedding-booking/internal/handler/middleware"
	"wedding-booking/internal/infra/memstore"
	"wedding-booking/internal/infra/messaging"
	"wedding-booking/internal/infra/outbox"
	"wedding-booking/internal/pkg/clock"
	"wedding-booking/internal/pkg/config"
	"wedding-booking/internal/usecase/commands"
	"wedding-booking/internal/usecase/queries"

	"github.com/google/uuid"
)

// lifecycle walks bookings through the quote, payment and completion flow in memory
// and prints the vendor's summary report.
func main() {
	var (
		logLevel = flag.String("log-level", "warn", "debug|info|warn|error")
		quote    = flag.String("quote", "500.00", "quoted amount for each booking")
		deposit  = flag.String("deposit", "200.00", "deposit paid before the balance")
	)
	flag.Parse()

	quoted, err := booking.ParseMoney(*quote)
	if err != nil {
		fail("quote", err)
	}
	down, err := booking.ParseMoney(*deposit)
	if err != nil {
		fail("deposit", err)
	}

	logger := middleware.NewLogger(config.LogConfig{
		Level:      *logLevel,
		TimeZone:   "UTC",
		TimeFormat: time.RFC3339,
	}).GetSlogLogger()

	ctx := context.Background()
	store := memstore.New(logger)
	cmds := commands.NewBookingCommands(store, booking.NewServices(clock.NewRealClock()), nil, logger)
	reports := queries.NewReportQueries(store.ReadStore(), nil, logger)

	vendor := booking.Vendor(uuid.New())
	eventDate := time.Now().AddDate(0, 6, 0)

	d := &driver{ctx: ctx, cmds: cmds, vendor: vendor}

	// Fully paid and confirmed by both sides.
	a := d.create(booking.Couple(uuid.New()), "photography", eventDate)
	d.quoteAndAccept(a, quoted)
	d.pay(a, down, booking.PaymentDeposit)
	d.pay(a, quoted.Sub(down), booking.PaymentBalance)
	d.transition(a.id, booking.StatusInProgress, vendor)
	d.complete(a)

	// Deposit only, then the vendor confirms completion while the couple has not yet.
	b := d.create(booking.Couple(uuid.New()), "catering", eventDate)
	d.quoteAndAccept(b, quoted)
	d.pay(b, down, booking.PaymentDeposit)
	d.transition(b.id, booking.StatusInProgress, vendor)
	d.markVendor(b.id)

	// Overpayment is refused and leaves the ledger untouched.
	if _, err := cmds.RecordPayment(ctx, commands.RecordPaymentInput{
		BookingID: b.id, Actor: b.couple, PaymentID: uuid.New(), Amount: quoted, PaymentType: booking.PaymentBalance,
	}); err != nil {
		fmt.Printf("overpayment on %s rejected: %v\n", b.id, err)
	}

	// Still waiting on a quote.
	d.create(booking.Couple(uuid.New()), "florist", eventDate)

	relay := outbox.NewRelay(store.Outbox(), messaging.NewLogPublisher(logger), config.OutboxConfig{BatchSize: 100}, logger)
	published, err := relay.RunOnce(ctx)
	if err != nil {
		fail("relay", err)
	}
	fmt.Printf("%d lifecycle events relayed\n\n", published)

	s, err := reports.Summary(ctx, vendor)
	if err != nil {
		fail("report", err)
	}
	fmt.Print(s.Text())
}

type party struct {
	id     uuid.UUID
	couple booking.Actor
}

type driver struct {
	ctx    context.Context
	cmds   commands.BookingCommands
	vendor booking.Actor
}

func (d *driver) create(couple booking.Actor, service string, eventDate time.Time) party {
	b, err := d.cmds.Create(d.ctx, commands.CreateBookingInput{
		Actor: couple, VendorID: d.vendor.ID, ServiceType: service, EventDate: eventDate,
	})
	if err != nil {
		fail("create", err)
	}
	fmt.Printf("%s: %s booked (%s)\n", b.ID(), service, b.Status())
	return party{id: b.ID(), couple: couple}
}

func (d *driver) quoteAndAccept(p party, amount booking.Money) {
	d.transition(p.id, booking.StatusQuoteRequested, p.couple)
	b, err := d.cmds.SetQuote(d.ctx, commands.SetQuoteInput{BookingID: p.id, Actor: d.vendor, Amount: amount})
	if err != nil {
		fail("quote", err)
	}
	fmt.Printf("%s: quoted %s (%s)\n", p.id, amount, b.Status())
	d.transition(p.id, booking.StatusQuoteAccepted, p.couple)
}

func (d *driver) pay(p party, amount booking.Money, pt booking.PaymentType) {
	out, err := d.cmds.RecordPayment(d.ctx, commands.RecordPaymentInput{
		BookingID: p.id, Actor: p.couple, PaymentID: uuid.New(), Amount: amount, PaymentType: pt,
	})
	if err != nil {
		fail("payment", err)
	}
	fmt.Printf("%s: %s %s paid, receipt %s, remaining %s (%s)\n",
		p.id, pt, amount, out.Receipt.Number(), out.Booking.RemainingBalance(), out.Booking.Status())
}

func (d *driver) transition(id uuid.UUID, target booking.Status, actor booking.Actor) {
	b, err := d.cmds.RequestTransition(d.ctx, commands.TransitionInput{BookingID: id, Target: target, Actor: actor})
	if err != nil {
		fail("transition to "+target.String(), err)
	}
	fmt.Printf("%s: %s\n", id, b.Status())
}

func (d *driver) markVendor(id uuid.UUID) {
	b, err := d.cmds.MarkVendorComplete(d.ctx, id, d.vendor)
	if err != nil {
		fail("vendor completion", err)
	}
	fmt.Printf("%s: vendor confirmed (%s)\n", id, b.Status())
}

func (d *driver) complete(p party) {
	d.markVendor(p.id)
	b, err := d.cmds.MarkCoupleComplete(d.ctx, p.id, p.couple)
	if err != nil {
		fail("couple completion", err)
	}
	fmt.Printf("%s: couple confirmed (%s)\n", p.id, b.Status())

	// A repeat confirmation changes nothing.
	b, err = d.cmds.MarkVendorComplete(d.ctx, p.id, d.vendor)
	if err != nil {
		fail("repeat completion", err)
	}
	fmt.Printf("%s: repeat vendor confirmation is a no-op (%s)\n", p.id, b.Status())
}

func fail(step string, err error) {
	fmt.Fprintf(os.Stderr, "%s: %v\n", step, err)
	os.Exit(1)
}
