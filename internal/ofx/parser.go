// Package ofx turns OFX/QFX bank and credit card statements into ledger
// record inputs.
package ofx

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"regexp"
	"strings"

	"github.com/aclindsa/ofxgo"
	"github.com/shopspring/decimal"

	"github.com/Veraticus/pocket-ledger/internal/ledger"
	"github.com/Veraticus/pocket-ledger/internal/model"
)

var (
	severityRegex = regexp.MustCompile(`(?i)<SEVERITY>(Info|Warn|Error)</SEVERITY>`)
	// Opening tags on their own line that lost their closing bracket.
	tagFixRegex = regexp.MustCompile(`(?m)^(\s*<[A-Z][A-Z0-9._]*[A-Z0-9])$`)
)

// Parser implements OFX/QFX file parsing. A Parser remembers the FITIDs it
// has returned, so reuse one Parser for all files of a single import.
type Parser struct {
	seen    map[string]bool
	mapping Mapping
}

// NewParser creates a parser that files entries according to mapping.
func NewParser(mapping Mapping) *Parser {
	return &Parser{
		mapping: mapping,
		seen:    make(map[string]bool),
	}
}

// preprocessOFX fixes common formatting issues in OFX files.
func (p *Parser) preprocessOFX(content string) string {
	// Trim any leading whitespace or blank lines before the header
	content = strings.TrimLeft(content, " \t\r\n")

	// SEVERITY must be upper case (INFO, WARN, ERROR)
	content = severityRegex.ReplaceAllStringFunc(content, func(match string) string {
		return strings.ToUpper(match)
	})

	content = tagFixRegex.ReplaceAllString(content, "$1>")

	return content
}

// Mapping decides which category and account imported entries get. OFX
// carries no categories of its own.
type Mapping struct {
	ExpenseCategory string
	IncomeCategory  string
	AccountID       string
}

// DefaultMapping files everything under the catch-all categories of the
// bank card account.
func DefaultMapping() Mapping {
	return Mapping{
		ExpenseCategory: "other_expense",
		IncomeCategory:  "other_income",
		AccountID:       "bank",
	}
}

// Entry is one statement transaction ready to be saved as a record.
type Entry struct {
	Input ledger.RecordInput
	// FITID is the bank's own transaction id, used for de-duplication.
	FITID string
	// StatementAccount is the account number from the statement itself.
	StatementAccount string
	TrnType          string
}

// ParseFile parses an OFX/QFX file into record inputs. Debits become
// expenses, credits become incomes; zero-amount lines are dropped. A FITID
// already seen by this parser, in this or an earlier file, is skipped.
func (p *Parser) ParseFile(ctx context.Context, reader io.Reader) ([]Entry, error) {
	resp, err := p.parse(reader)
	if err != nil {
		return nil, err
	}

	var entries []Entry
	var bankStmts, ccStmts, duplicates int

	for _, msg := range resp.Bank {
		stmt, ok := msg.(*ofxgo.StatementResponse)
		if !ok || stmt.BankTranList == nil {
			continue
		}
		bankStmts++
		for _, ofxTx := range stmt.BankTranList.Transactions {
			if err := ctx.Err(); err != nil {
				return nil, err
			}
			entry, keep, dup := p.convertTransaction(ofxTx, string(stmt.BankAcctFrom.AcctID))
			if dup {
				duplicates++
			}
			if keep {
				entries = append(entries, entry)
			}
		}
	}

	for _, msg := range resp.CreditCard {
		stmt, ok := msg.(*ofxgo.CCStatementResponse)
		if !ok || stmt.BankTranList == nil {
			continue
		}
		ccStmts++
		for _, ofxTx := range stmt.BankTranList.Transactions {
			if err := ctx.Err(); err != nil {
				return nil, err
			}
			entry, keep, dup := p.convertTransaction(ofxTx, string(stmt.CCAcctFrom.AcctID))
			if dup {
				duplicates++
			}
			if keep {
				entries = append(entries, entry)
			}
		}
	}

	slog.Info("Parsed OFX file",
		"entries", len(entries),
		"duplicates", duplicates,
		"bank_statements", bankStmts,
		"cc_statements", ccStmts)

	return entries, nil
}

func (p *Parser) parse(reader io.Reader) (*ofxgo.Response, error) {
	content, err := io.ReadAll(reader)
	if err != nil {
		return nil, fmt.Errorf("failed to read OFX file: %w", err)
	}

	resp, err := ofxgo.ParseResponse(strings.NewReader(p.preprocessOFX(string(content))))
	if err != nil {
		return nil, fmt.Errorf("failed to parse OFX file: %w", err)
	}
	return resp, nil
}

// convertTransaction maps one OFX transaction onto a record input. keep is
// false for zero amounts and repeated FITIDs; dup reports the latter.
func (p *Parser) convertTransaction(ofxTx ofxgo.Transaction, statementAccount string) (entry Entry, keep, dup bool) {
	fitID := string(ofxTx.FiTID)
	if fitID != "" {
		if p.seen[fitID] {
			return Entry{}, false, true
		}
		p.seen[fitID] = true
	}

	// TRNAMT is signed: negative for money leaving the account.
	amount, err := decimal.NewFromString(ofxTx.TrnAmt.FloatString(2))
	if err != nil || amount.IsZero() {
		return Entry{}, false, false
	}

	input := ledger.RecordInput{
		Type:       model.RecordTypeExpense,
		Amount:     amount.Abs(),
		CategoryID: p.mapping.ExpenseCategory,
		AccountID:  p.mapping.AccountID,
		Note:       p.extractMerchantName(ofxTx),
		Date:       string(model.NewDate(ofxTx.DtPosted.Time)),
	}
	if amount.IsPositive() {
		input.Type = model.RecordTypeIncome
		input.CategoryID = p.mapping.IncomeCategory
	}
	if ofxTx.CheckNum != "" && !strings.Contains(input.Note, string(ofxTx.CheckNum)) {
		input.Note = strings.TrimSpace(input.Note + " #" + string(ofxTx.CheckNum))
	}

	return Entry{
		Input:            input,
		FITID:            fitID,
		StatementAccount: statementAccount,
		TrnType:          ofxTx.TrnType.String(),
	}, true, false
}

// extractMerchantName tries to get a clean merchant name from OFX data.
func (p *Parser) extractMerchantName(tx ofxgo.Transaction) string {
	// Prefer PAYEE if available (cleaner merchant name)
	if tx.Payee != nil && tx.Payee.Name != "" {
		return string(tx.Payee.Name)
	}

	// Fall back to NAME field
	name := string(tx.Name)

	// Use MEMO field if NAME is generic
	if tx.Memo != "" && isGenericDescription(name) {
		// Sometimes MEMO has better merchant info
		name = string(tx.Memo)
	}

	// Basic cleanup
	name = strings.TrimSpace(name)

	// Remove common prefixes
	prefixes := []string{
		"POS PURCHASE ",
		"PURCHASE AUTHORIZED ON ",
		"DEBIT CARD PURCHASE ",
		"ACH DEBIT ",
		"CHECK CARD ",
		"VISA PURCHASE ",
		"MC PURCHASE ",
		"DEBIT PURCHASE ",
	}

	for _, prefix := range prefixes {
		if strings.HasPrefix(strings.ToUpper(name), prefix) {
			name = name[len(prefix):]
			break
		}
	}

	// Clean up date patterns like "MM/DD" at the beginning
	if len(name) > 5 && name[2] == '/' && name[5] == ' ' {
		name = strings.TrimSpace(name[6:])
	}

	return name
}

// isGenericDescription checks if a transaction name is too generic.
func isGenericDescription(name string) bool {
	generic := []string{
		"DEBIT",
		"CREDIT",
		"PURCHASE",
		"PAYMENT",
		"POS TRANSACTION",
		"CARD PURCHASE",
	}

	upperName := strings.ToUpper(name)
	for _, g := range generic {
		if upperName == g {
			return true
		}
	}
	return false
}

// GetAccounts extracts unique account IDs from the OFX file.
func (p *Parser) GetAccounts(_ context.Context, reader io.Reader) ([]string, error) {
	resp, err := p.parse(reader)
	if err != nil {
		return nil, err
	}

	accountMap := make(map[string]bool)
	var accounts []string
	add := func(id ofxgo.String) {
		if id != "" && !accountMap[string(id)] {
			accountMap[string(id)] = true
			accounts = append(accounts, string(id))
		}
	}

	for _, msg := range resp.Bank {
		if stmt, ok := msg.(*ofxgo.StatementResponse); ok {
			add(stmt.BankAcctFrom.AcctID)
		}
	}
	for _, msg := range resp.CreditCard {
		if stmt, ok := msg.(*ofxgo.CCStatementResponse); ok {
			add(stmt.CCAcctFrom.AcctID)
		}
	}

	return accounts, nil
}
