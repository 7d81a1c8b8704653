package identity

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/bissquit/hotel-desk/internal/domain"
)

const fieldDelimiter = ","

// ErrBlankLine is returned by DecodeLine for lines with no content.
var ErrBlankLine = errors.New("blank line")

// DecodeError describes why a stored line was rejected.
type DecodeError struct {
	Role   domain.Role
	Reason string
}

func (e *DecodeError) Error() string {
	return fmt.Sprintf("decode %s record: %s", e.Role, e.Reason)
}

// minFields returns the number of fields a line must carry for the role.
func minFields(role domain.Role) int {
	if role == domain.RoleStaff {
		return 3
	}
	return 2
}

// EncodeLine serializes an account to one store line without a newline.
// Fields are not escaped: a comma inside a field corrupts the line.
func EncodeLine(account domain.Account) string {
	fields := []string{account.Username, account.Password}
	if account.Role == domain.RoleStaff {
		fields = append(fields, string(account.Position))
	}
	return strings.Join(fields, fieldDelimiter)
}

// DecodeLine parses one store line for the given role.
// Fields beyond the role's schema are ignored. A staff position is taken
// as stored, even when it is not one of domain.Positions.
func DecodeLine(role domain.Role, line string) (domain.Account, error) {
	line = strings.TrimSpace(line)
	if line == "" {
		return domain.Account{}, ErrBlankLine
	}

	parts := strings.Split(line, fieldDelimiter)
	if len(parts) < minFields(role) {
		return domain.Account{}, &DecodeError{Role: role, Reason: "too few fields"}
	}
	if parts[0] == "" {
		return domain.Account{}, &DecodeError{Role: role, Reason: "empty username"}
	}

	account := domain.Account{
		Username: parts[0],
		Password: parts[1],
		Role:     role,
	}
	if role == domain.RoleStaff {
		account.Position = domain.Position(parts[2])
	}

	return account, nil
}

// LineIssue points at one stored line and says what is wrong with it.
type LineIssue struct {
	Line   int
	Reason string
}

// ParseReport summarizes a lenient store load. Skipped lines are dropped
// from the snapshot; lines with warnings are kept.
type ParseReport struct {
	Lines    int
	Blank    int
	Skipped  []LineIssue
	Warnings []LineIssue
}

// DecodeStore reads every line of a store. Blank and malformed lines are
// recorded in the report and skipped; only read errors fail the load.
// Lines have no length limit.
func DecodeStore(role domain.Role, r io.Reader) (*Snapshot, error) {
	snapshot := NewSnapshot(role)

	reader := bufio.NewReader(r)
	lineNo := 0
	for {
		line, readErr := reader.ReadString('\n')
		if readErr != nil && !errors.Is(readErr, io.EOF) {
			return nil, fmt.Errorf("read %s store: %w", role, readErr)
		}
		if line == "" && readErr != nil {
			break
		}
		lineNo++

		if err := snapshot.decodeInto(lineNo, line); err != nil {
			return nil, err
		}
		if readErr != nil {
			break
		}
	}
	snapshot.Report.Lines = lineNo

	return snapshot, nil
}

func (s *Snapshot) decodeInto(lineNo int, line string) error {
	account, err := DecodeLine(s.Role, line)
	if errors.Is(err, ErrBlankLine) {
		s.Report.Blank++
		return nil
	}
	var decodeErr *DecodeError
	if errors.As(err, &decodeErr) {
		s.Report.Skipped = append(s.Report.Skipped, LineIssue{Line: lineNo, Reason: decodeErr.Reason})
		return nil
	}
	if err != nil {
		return err
	}

	if s.Role == domain.RoleStaff && !account.Position.IsValid() {
		s.Report.Warnings = append(s.Report.Warnings, LineIssue{
			Line:   lineNo,
			Reason: fmt.Sprintf("unknown position %q", account.Position),
		})
	}
	s.putLoaded(account, strings.TrimSpace(line))
	return nil
}
