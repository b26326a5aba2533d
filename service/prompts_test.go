package service

import (
	"strings"
	"testing"
	"time"
)

func TestMasterAnalysisPrompt(t *testing.T) {
	prompt := MasterAnalysisPrompt("THIS AGREEMENT is made...", "rental", "hi")

	for _, want := range []string{
		"THIS AGREEMENT is made...",
		"rental",
		"overall_risk",
		"sign_verdict",
		"clauses",
	} {
		if !strings.Contains(prompt, want) {
			t.Errorf("Expected prompt to contain %q", want)
		}
	}
}

func TestNegotiationPromptPersonaFallback(t *testing.T) {
	prompt := NegotiationPrompt("clause", "pirate", 1, "hi", "")
	if !strings.Contains(prompt, negotiationPersonas["landlord"]) {
		t.Error("Unknown persona must fall back to the landlord character")
	}

	prompt = NegotiationPrompt("clause", "employer", 1, "hi", "")
	if !strings.Contains(prompt, "HR manager") {
		t.Error("Expected employer character description")
	}
}

func TestNegotiationPromptFinalExchange(t *testing.T) {
	early := NegotiationPrompt("clause", "landlord", 2, "hi", "")
	if strings.Contains(early, "THIS IS THE FINAL EXCHANGE") {
		t.Error("Compromise rule must not apply before exchange 3")
	}

	final := NegotiationPrompt("clause", "landlord", 3, "hi", "")
	if !strings.Contains(final, "THIS IS THE FINAL EXCHANGE") {
		t.Error("Exchange 3 must force a compromise")
	}
}

func TestDisputeLetterPromptDefaults(t *testing.T) {
	details := DisputeDetails{
		SenderName:          "Jane Doe",
		SenderAddress:       "12 MG Road, Pune",
		SenderPhone:         "9999999999",
		SenderEmail:         "jane@example.com",
		ReceiverName:        "Acme Landlords",
		ReceiverAddress:     "1 FC Road, Pune",
		AgreementDate:       "1 January 2026",
		AgreementType:       "Rental Agreement",
		ClauseText:          "Deposit shall be refunded within 30 days",
		IncidentDescription: "Deposit not refunded",
		IncidentDate:        "1 July 2026",
		ReliefSought:        "Refund of deposit",
		DocumentType:        "rental",
	}

	today := time.Date(2026, time.August, 28, 0, 0, 0, 0, time.UTC)
	prompt := DisputeLetterPrompt(details, "LN/2026/4821", today)

	if !strings.Contains(prompt, "28 August 2026") {
		t.Error("Expected today's date in '2 January 2006' format")
	}
	if !strings.Contains(prompt, "LN/2026/4821") {
		t.Error("Expected notice reference in prompt")
	}
	// Blank advocate and designation fall back to placeholders
	if !strings.Contains(prompt, "Self / In-Person") {
		t.Error("Expected advocate fallback")
	}
	if !strings.Contains(prompt, "N/A") {
		t.Error("Expected designation fallback")
	}
}

func TestBenchmarkPrompt(t *testing.T) {
	prompt := BenchmarkPrompt("security_deposit", "6 months rent", "rental")

	for _, want := range []string{"security_deposit", "6 months rent", "rental"} {
		if !strings.Contains(prompt, want) {
			t.Errorf("Expected prompt to contain %q", want)
		}
	}
}

func TestCompareContractsPromptDefaultsRole(t *testing.T) {
	prompt := CompareContractsPrompt("old text", "new text", "tenant")
	if !strings.Contains(prompt, "tenant") {
		t.Error("Expected user role in prompt")
	}
	if !strings.Contains(prompt, "old text") || !strings.Contains(prompt, "new text") {
		t.Error("Expected both contract versions in prompt")
	}
}
