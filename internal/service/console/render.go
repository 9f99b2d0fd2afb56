package console

import (
	"fmt"
	"io"
	"strconv"

	"github.com/olekukonko/tablewriter"

	"github.com/oshokin/boombim-admin/internal/domain/alarm"
)

// RenderResult prints the delivery summary of a broadcast as a table.
func RenderResult(w io.Writer, result *alarm.Result) {
	if result == nil {
		return
	}

	completedAt := "-"
	if result.CompletedAt != nil {
		completedAt = *result.CompletedAt
	}

	_, _ = fmt.Fprintln(w, "📊 전송 결과")

	table := tablewriter.NewWriter(w)
	table.SetAutoFormatHeaders(false)
	table.SetHeader([]string{"성공", "실패", "총 대상", "알림 ID", "상태", "완료 시각"})
	table.Append([]string{
		strconv.FormatInt(result.SuccessCount, 10),
		strconv.FormatInt(result.FailureCount, 10),
		strconv.FormatInt(result.TotalTargets, 10),
		"#" + strconv.FormatInt(result.AlarmID, 10),
		result.Status,
		completedAt,
	})

	table.SetHeaderAlignment(tablewriter.ALIGN_CENTER)
	table.SetAlignment(tablewriter.ALIGN_CENTER)
	table.Render()
}
