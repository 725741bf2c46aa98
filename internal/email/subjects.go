package email

const (
	subjectHotLeadAlertFmt    = "Hot lead: %s (%s)"
	subjectPurchaseReceiptFmt = "Purchase confirmed: %s"
)
