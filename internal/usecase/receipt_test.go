package usecase

import (
	"context"
	"errors"
	"testing"

	"github.com/pasarmart/pasarmart/internal/channel"
	domainErrors "github.com/pasarmart/pasarmart/internal/domain/errors"
	"github.com/pasarmart/pasarmart/internal/domain/model"
	testhelpers "github.com/pasarmart/pasarmart/internal/test"
)

// blobStub stores nothing and returns deterministic URLs.
type blobStub struct {
	err   error
	saved int
}

func (b *blobStub) Save(ctx context.Context, name, contentType string, data []byte) (string, error) {
	if b.err != nil {
		return "", b.err
	}
	b.saved++
	return "/receipts/" + name, nil
}

type receiptFixture struct {
	*reconcileFixture
	receipts *testhelpers.ReceiptRepositoryStub
	blobs    *blobStub
	uc       *ReceiptUseCase
}

func newReceiptFixture(t *testing.T) *receiptFixture {
	t.Helper()
	base := newReconcileFixture(t, channel.NewManualReceiptChannel())
	f := &receiptFixture{
		reconcileFixture: base,
		receipts:         testhelpers.NewReceiptRepositoryStub(),
		blobs:            &blobStub{},
	}
	f.uc = NewReceiptUseCase(f.receipts, base.orders, base.payments, base.sellers, f.blobs, base.uc, testLogger())
	return f
}

func (f *receiptFixture) createManualOrder(t *testing.T) *model.Order {
	t.Helper()
	seedCatalog(f.reconcileFixture)
	order, _, err := f.reconcileFixture.uc.CreateOrder(context.Background(), validOrderInput(model.PaymentMethodManualReceipt))
	if err != nil {
		t.Fatalf("create manual order: %v", err)
	}
	return order
}

func TestReceiptUpload_Success(t *testing.T) {
	f := newReceiptFixture(t)
	order := f.createManualOrder(t)

	receipt, err := f.uc.Upload(context.Background(), order.ID, []byte("png-bytes"), "image/png")
	if err != nil {
		t.Fatalf("upload: %v", err)
	}
	if receipt.Status != model.ReceiptStatusPending {
		t.Fatalf("expected pending receipt, got %s", receipt.Status)
	}
	if receipt.Amount != order.TotalAmount {
		t.Fatalf("expected amount %v, got %v", order.TotalAmount, receipt.Amount)
	}

	got, _ := f.orders.GetByID(context.Background(), order.ID)
	if got.ReceiptURL == nil || *got.ReceiptURL == "" {
		t.Fatal("expected receipt URL set on the order")
	}
	if f.notifier.SentCount() != 1 {
		t.Fatalf("expected seller notification, got %d", f.notifier.SentCount())
	}
}

func TestReceiptUpload_RejectsNonManualOrder(t *testing.T) {
	f := newReceiptFixture(t)
	f.orders.Put(&model.Order{ID: 1, SellerID: 5, Status: model.OrderStatusPending, PaymentMethod: model.PaymentMethodHostedBill})

	_, err := f.uc.Upload(context.Background(), 1, []byte("x"), "image/png")
	if !errors.Is(err, domainErrors.ErrValidation) {
		t.Fatalf("expected ErrValidation, got %v", err)
	}
}

func TestReceiptUpload_RejectsSecondPendingReceipt(t *testing.T) {
	f := newReceiptFixture(t)
	order := f.createManualOrder(t)

	if _, err := f.uc.Upload(context.Background(), order.ID, []byte("x"), "image/png"); err != nil {
		t.Fatalf("first upload: %v", err)
	}
	_, err := f.uc.Upload(context.Background(), order.ID, []byte("y"), "image/png")
	if !errors.Is(err, domainErrors.ErrValidation) {
		t.Fatalf("expected ErrValidation while a receipt is pending, got %v", err)
	}
}

func TestReceiptUpload_LimitAfterRejection(t *testing.T) {
	f := newReceiptFixture(t)
	order := f.createManualOrder(t)

	first, err := f.uc.Upload(context.Background(), order.ID, []byte("x"), "image/png")
	if err != nil {
		t.Fatalf("first upload: %v", err)
	}
	if _, err := f.uc.Reject(context.Background(), first.ID, order.SellerID, "blurry"); err != nil {
		t.Fatalf("reject: %v", err)
	}

	second, err := f.uc.Upload(context.Background(), order.ID, []byte("y"), "image/png")
	if err != nil {
		t.Fatalf("re-upload after rejection: %v", err)
	}
	if _, err := f.uc.Reject(context.Background(), second.ID, order.SellerID, "wrong amount"); err != nil {
		t.Fatalf("second reject: %v", err)
	}

	_, err = f.uc.Upload(context.Background(), order.ID, []byte("z"), "image/png")
	if !errors.Is(err, domainErrors.ErrUploadLimit) {
		t.Fatalf("expected ErrUploadLimit on third upload, got %v", err)
	}
}

func TestReceiptApprove_MarksOrderPaid(t *testing.T) {
	f := newReceiptFixture(t)
	order := f.createManualOrder(t)

	receipt, err := f.uc.Upload(context.Background(), order.ID, []byte("x"), "image/png")
	if err != nil {
		t.Fatalf("upload: %v", err)
	}

	updated, err := f.uc.Approve(context.Background(), receipt.ID, order.SellerID)
	if err != nil {
		t.Fatalf("approve: %v", err)
	}
	if updated.Status != model.OrderStatusPaid {
		t.Fatalf("expected paid, got %s", updated.Status)
	}
	if updated.PaymentStatus != model.PaymentStatusPaid {
		t.Fatalf("expected payment_status paid, got %s", updated.PaymentStatus)
	}
}

func TestReceiptApprove_AfterRejectedReupload(t *testing.T) {
	f := newReceiptFixture(t)
	order := f.createManualOrder(t)

	first, err := f.uc.Upload(context.Background(), order.ID, []byte("x"), "image/png")
	if err != nil {
		t.Fatalf("first upload: %v", err)
	}
	if _, err := f.uc.Reject(context.Background(), first.ID, order.SellerID, "blurry"); err != nil {
		t.Fatalf("reject: %v", err)
	}

	second, err := f.uc.Upload(context.Background(), order.ID, []byte("y"), "image/png")
	if err != nil {
		t.Fatalf("re-upload: %v", err)
	}
	updated, err := f.uc.Approve(context.Background(), second.ID, order.SellerID)
	if err != nil {
		t.Fatalf("approve: %v", err)
	}
	if updated.Status != model.OrderStatusPaid || updated.PaymentStatus != model.PaymentStatusPaid {
		t.Fatalf("expected paid order, got status=%s payment_status=%s", updated.Status, updated.PaymentStatus)
	}

	// The rejection closed the first attempt; the approval must land on a
	// fresh pending row, never a silent no-op against the failed one.
	latest, err := f.payments.LatestByOrder(context.Background(), order.ID, model.PaymentMethodManualReceipt)
	if err != nil {
		t.Fatalf("latest payment: %v", err)
	}
	if latest.Status != model.PaymentStateCompleted {
		t.Fatalf("expected latest payment completed, got %s", latest.Status)
	}

	attempts := 0
	for _, p := range f.payments.Payments {
		if p.OrderID == order.ID {
			attempts++
		}
	}
	if attempts != 2 {
		t.Fatalf("expected two payment attempts, got %d", attempts)
	}
}

func TestReceiptReject_KeepsOrderPending(t *testing.T) {
	f := newReceiptFixture(t)
	order := f.createManualOrder(t)

	receipt, err := f.uc.Upload(context.Background(), order.ID, []byte("x"), "image/png")
	if err != nil {
		t.Fatalf("upload: %v", err)
	}

	updated, err := f.uc.Reject(context.Background(), receipt.ID, order.SellerID, "amount mismatch")
	if err != nil {
		t.Fatalf("reject: %v", err)
	}
	if updated.Status != model.OrderStatusPending {
		t.Fatalf("expected order still pending, got %s", updated.Status)
	}
	if updated.PaymentStatus != model.PaymentStatusFailed {
		t.Fatalf("expected payment_status failed, got %s", updated.PaymentStatus)
	}
}

func TestReceiptResolve_OwnershipEnforced(t *testing.T) {
	f := newReceiptFixture(t)
	order := f.createManualOrder(t)

	receipt, err := f.uc.Upload(context.Background(), order.ID, []byte("x"), "image/png")
	if err != nil {
		t.Fatalf("upload: %v", err)
	}

	_, err = f.uc.Approve(context.Background(), receipt.ID, order.SellerID+1)
	if !errors.Is(err, domainErrors.ErrNotOwner) {
		t.Fatalf("expected ErrNotOwner, got %v", err)
	}
}

func TestReceiptResolve_SecondDecisionRejected(t *testing.T) {
	f := newReceiptFixture(t)
	order := f.createManualOrder(t)

	receipt, err := f.uc.Upload(context.Background(), order.ID, []byte("x"), "image/png")
	if err != nil {
		t.Fatalf("upload: %v", err)
	}

	if _, err := f.uc.Approve(context.Background(), receipt.ID, order.SellerID); err != nil {
		t.Fatalf("approve: %v", err)
	}
	_, err = f.uc.Reject(context.Background(), receipt.ID, order.SellerID, "")
	if !errors.Is(err, domainErrors.ErrReceiptClosed) {
		t.Fatalf("expected ErrReceiptClosed, got %v", err)
	}
}

func TestPendingForSeller(t *testing.T) {
	f := newReceiptFixture(t)
	order := f.createManualOrder(t)

	if _, err := f.uc.Upload(context.Background(), order.ID, []byte("x"), "image/png"); err != nil {
		t.Fatalf("upload: %v", err)
	}

	pending, err := f.uc.PendingForSeller(context.Background(), order.SellerID, 10)
	if err != nil {
		t.Fatalf("pending: %v", err)
	}
	if len(pending) != 1 {
		t.Fatalf("expected one pending receipt, got %d", len(pending))
	}
}
