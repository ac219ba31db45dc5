package service

import "rental-frontend/internal/domain"

// ActionsFor derives which lifecycle buttons to offer from an already fetched
// detail. The result is a UI hint only; the Contracts API may still reject
// any of these actions.
func ActionsFor(detail domain.ContractDetail) domain.ContractActions {
	confirmed := detail.Contract.Confirmed

	allInspected := len(detail.Vehicles) > 0
	for _, v := range detail.Vehicles {
		if !v.Inspected {
			allInspected = false
			break
		}
	}

	return domain.ContractActions{
		CanAddLines: !confirmed,
		CanConfirm:  !confirmed && allInspected,
		CanStart:    confirmed && detail.Contract.StateID == domain.PreStartStateID,
	}
}
