package domain

import (
	"context"
	"time"
)

type Service interface {
	Create(ctx context.Context, req CreateCaseRequest, preparerEmail string) (*CaseResponse, error)
	Replace(ctx context.Context, caseID string, req CreateCaseRequest, preparerEmail string) (*CaseResponse, error)
	Delete(ctx context.Context, caseID string) error
	GetByCaseID(ctx context.Context, caseID string) (*CaseResponse, error)
	MoveToAgenda(ctx context.Context, caseID string) error
	MoveToPreAppeal(ctx context.Context, caseID string) error
}

type CreateCaseRequest struct {
	CaseID              string         `json:"case_id"`
	AuditorNames        string         `json:"auditor_names"`
	AcknowledgementDate time.Time      `json:"acknowledgement_date"`
	AssessmentTime      string         `json:"assessment_time"`
	AppealDate          time.Time      `json:"appeal_date"`
	AppealExpireDate    time.Time      `json:"appeal_expire_date"`
	Presenter           string         `json:"presenter"`
	TIN                 string         `json:"tin"`
	AttachmentLink      string         `json:"attachment_link"`
	TaxItems            []TaxItemInput `json:"tax_items"`
	Metadata            map[string]any `json:"metadata,omitempty"`
}

type TaxItemInput struct {
	TaxType                  string             `json:"tax_type"`
	PrincipalAmount          int64              `json:"principal_amount"`
	UnderstatementFines      int64              `json:"understatement_fines"`
	FixedAdministrativeFines int64              `json:"fixed_administrative_fines"`
	DischargedAmount         int64              `json:"discharged_amount"`
	OtherFines               int64              `json:"other_fines"`
	TotalTaxAndFines         int64              `json:"total_tax_and_fines"`
	AppealPoints             []AppealPointInput `json:"appeal_points"`
}

type AppealPointInput struct {
	AppealText        string `json:"appeal_text"`
	SummarizedProblem string `json:"summarized_problem"`
	AuditorOpinion    string `json:"auditor_opinion"`
	ProposedSolution  string `json:"proposed_solution"`
}

type CaseResponse struct {
	CaseID              string            `json:"case_id"`
	AuditorNames        string            `json:"auditor_names"`
	AcknowledgementDate time.Time         `json:"acknowledgement_date"`
	AssessmentTime      string            `json:"assessment_time"`
	AppealDate          time.Time         `json:"appeal_date"`
	AppealExpireDate    time.Time         `json:"appeal_expire_date"`
	Presenter           string            `json:"presenter"`
	TIN                 string            `json:"tin"`
	AttachmentLink      string            `json:"attachment_link"`
	PreparerEmail       string            `json:"preparer_email"`
	SubmissionDate      time.Time         `json:"submission_date"`
	Status              CaseStatus        `json:"status"`
	TaxItems            []TaxItemResponse `json:"tax_items"`
}

type TaxItemResponse struct {
	ID                       string                `json:"id"`
	TaxType                  string                `json:"tax_type"`
	PrincipalAmount          int64                 `json:"principal_amount"`
	UnderstatementFines      int64                 `json:"understatement_fines"`
	FixedAdministrativeFines int64                 `json:"fixed_administrative_fines"`
	DischargedAmount         int64                 `json:"discharged_amount"`
	OtherFines               int64                 `json:"other_fines"`
	TotalTaxAndFines         int64                 `json:"total_tax_and_fines"`
	AppealPoints             []AppealPointResponse `json:"appeal_points"`
}

type AppealPointResponse struct {
	ID                string `json:"id"`
	AppealText        string `json:"appeal_text"`
	SummarizedProblem string `json:"summarized_problem"`
	AuditorOpinion    string `json:"auditor_opinion"`
	ProposedSolution  string `json:"proposed_solution"`
}
