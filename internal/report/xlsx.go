package report

import (
	"strconv"

	"github.com/rotisserie/eris"
	"github.com/tealeg/xlsx/v2"

	"github.com/veritide/compliance-cli/internal/model"
)

var ledgerHeader = []string{"ID", "Date", "Amount", "Counterparty", "Type", "Flagged", "Flag Reason"}

// ExportLedger writes the report's transaction ledger to an XLSX workbook
// for handoff to reviewers. The report must carry its record snapshot.
func ExportLedger(rep *model.Report, path string) error {
	if rep.Record == nil {
		return eris.New("report: no record snapshot to export")
	}

	f := xlsx.NewFile()
	sheet, err := f.AddSheet("Transactions")
	if err != nil {
		return eris.Wrap(err, "report: add sheet")
	}

	header := sheet.AddRow()
	for _, h := range ledgerHeader {
		header.AddCell().Value = h
	}

	for _, tx := range rep.Record.Transactions {
		row := sheet.AddRow()
		row.AddCell().Value = strconv.Itoa(tx.ID)
		row.AddCell().Value = tx.Date
		row.AddCell().Value = tx.Amount
		row.AddCell().Value = tx.Counterparty
		row.AddCell().Value = tx.Type
		row.AddCell().Value = strconv.FormatBool(tx.Flagged)
		row.AddCell().Value = tx.FlagReason
	}

	if err := f.Save(path); err != nil {
		return eris.Wrapf(err, "report: save %s", path)
	}
	return nil
}
