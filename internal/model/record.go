package model

import (
	"time"

	"github.com/shopspring/decimal"
)

const (
	// CounterpartyINSS is the opposing institutional party of every RPV paid by the INSS.
	CounterpartyINSS = "Instituto Nacional do Seguro Social - INSS"
	// StatusNew marks a record that was just extracted and not yet reviewed.
	StatusNew = "nova"
	// Review workflow statuses. Records are created as StatusNew; the others
	// are set by downstream review tooling.
	StatusRead      = "lida"
	StatusProcessed = "processada"
	StatusDone      = "concluída"
)

// Record is one legal-case entry extracted from a gazette document.
// It is a pure domain model: pointer fields are nil when the value was not
// found in the source paragraph. Records are never mutated once built.
type Record struct {
	ID                    int64            `json:"id"`
	SourceFilename        string           `json:"arquivo"`
	AvailabilityDate      *time.Time       `json:"data_disponibilizacao"`
	CaseNumber            *string          `json:"processo"`
	Parties               *string          `json:"autores"`
	Attorneys             *string          `json:"advogados"`
	PrincipalAmount       *decimal.Decimal `json:"valor_principal_bruto_liquido"`
	DefaultInterestAmount *decimal.Decimal `json:"valor_juros_moratorios"`
	AttorneyFeeAmount     *decimal.Decimal `json:"valor_honorarios_advocaticios"`
	ParagraphText         string           `json:"paragrafo"`
	Counterparty          string           `json:"reu"`
	Status                string           `json:"status"`
	CreatedAt             time.Time        `json:"created_at"`
	UpdatedAt             time.Time        `json:"updated_at"`
}
