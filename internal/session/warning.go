package session

import (
	"errors"

	"github.com/sustainlab/materiality/internal/assessment"
	"github.com/sustainlab/materiality/internal/selection"
)

// Warning returns the user-facing message for a workflow error.
func Warning(err error) string {
	switch {
	case err == nil:
		return ""
	case errors.Is(err, selection.ErrSelectionFull):
		return "最多只能選擇10個項目！"
	case errors.Is(err, ErrIdentityIncomplete):
		return "請填寫姓名和部門！"
	case errors.Is(err, ErrSelectionCount):
		return "必須選擇10個項目！"
	case errors.Is(err, selection.ErrUnknownTopic):
		return "無效的評估項目！"
	case errors.Is(err, assessment.ErrRange):
		return "評分必須介於1到5之間！"
	case errors.Is(err, assessment.ErrInvalidEnum):
		return "議題類型必須為「實際」或「潛在」！"
	case errors.Is(err, assessment.ErrIndex), errors.Is(err, assessment.ErrUnknownField):
		return "無效的評估欄位！"
	case errors.Is(err, assessment.ErrIO):
		return "無法保存結果，請選擇其他資料夾！"
	case errors.Is(err, assessment.ErrPrecondition):
		return "目前無法執行此操作！"
	}
	return "發生未預期的錯誤：" + err.Error()
}
