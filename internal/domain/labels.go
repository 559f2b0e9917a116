package domain

// Display text for enums, shared by every surface that renders them.

var rentalStatusLabels = map[RentalStatus]string{
	RentalStatusPending:   "Awaiting confirmation",
	RentalStatusConfirmed: "Confirmed",
	RentalStatusActive:    "In progress",
	RentalStatusCompleted: "Completed",
	RentalStatusCancelled: "Cancelled",
	RentalStatusOverdue:   "Overdue",
}

var paymentStatusLabels = map[PaymentStatus]string{
	PaymentStatusPending:   "Pending",
	PaymentStatusCompleted: "Completed",
	PaymentStatusFailed:    "Failed",
	PaymentStatusCancelled: "Cancelled",
}

var paymentTypeLabels = map[PaymentType]string{
	PaymentTypeDeposit:     "Deposit",
	PaymentTypeRentalFee:   "Rental fee",
	PaymentTypeLateFee:     "Late fee",
	PaymentTypeDamageFee:   "Damage fee",
	PaymentTypeRefund:      "Refund",
	PaymentTypeFullPayment: "Full payment",
}

var carStatusLabels = map[CarStatus]string{
	CarStatusAvailable:       "Available",
	CarStatusRented:          "Rented",
	CarStatusMaintenance:     "Under maintenance",
	CarStatusPendingApproval: "Pending approval",
	CarStatusReserved:        "Reserved",
}

var distributionStatusLabels = map[DistributionStatus]string{
	DistributionStatusPending:    "Pending",
	DistributionStatusProcessing: "Processing",
	DistributionStatusCompleted:  "Completed",
	DistributionStatusFailed:     "Failed",
	DistributionStatusCancelled:  "Cancelled",
}

func (s RentalStatus) Label() string {
	if l, ok := rentalStatusLabels[s]; ok {
		return l
	}
	return string(s)
}

func (s PaymentStatus) Label() string {
	if l, ok := paymentStatusLabels[s]; ok {
		return l
	}
	return string(s)
}

func (t PaymentType) Label() string {
	if l, ok := paymentTypeLabels[t]; ok {
		return l
	}
	return string(t)
}

func (s CarStatus) Label() string {
	if l, ok := carStatusLabels[s]; ok {
		return l
	}
	return string(s)
}

func (s DistributionStatus) Label() string {
	if l, ok := distributionStatusLabels[s]; ok {
		return l
	}
	return string(s)
}
