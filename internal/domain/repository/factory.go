package repository

// Factory describes access to different domain repositories.
type Factory interface {
	Orders() OrderRepository
	Payments() PaymentRepository
	Receipts() ReceiptRepository
	Inventory() InventoryRepository
	Sellers() SellerRepository
}
