package metrics

import "strconv"

// Методы ниже безопасно вызывать на nil *Metrics, когда метрики выключены

// RecordAppointments учитывает забронированные слоты
func (m *Metrics) RecordAppointments(machineID string, count int) {
	if m == nil {
		return
	}
	m.AppointmentsCreated.WithLabelValues(machineID).Add(float64(count))
}

// RecordCancellation учитывает отмененный слот
func (m *Metrics) RecordCancellation(machineID string) {
	if m == nil {
		return
	}
	m.AppointmentsCancelled.WithLabelValues(machineID).Inc()
}

// RecordOfferRedeemed учитывает использованное предложение
func (m *Metrics) RecordOfferRedeemed(offerType string) {
	if m == nil {
		return
	}
	m.OffersRedeemed.WithLabelValues(offerType).Inc()
}

// RecordMatchResult учитывает результат матча: final=true для финала
func (m *Metrics) RecordMatchResult(final bool) {
	if m == nil {
		return
	}
	m.TournamentMatches.WithLabelValues("final_" + strconv.FormatBool(final)).Inc()
}

// RecordPrizeOffers учитывает выданные призовые предложения
func (m *Metrics) RecordPrizeOffers(offerType string, count int) {
	if m == nil {
		return
	}
	m.PrizesDistributed.WithLabelValues(offerType).Add(float64(count))
}
