package textprep

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTokenizeSplitsWordsAndPunctuation(t *testing.T) {
	tokens := Tokenize("Tuyển dụng nhân viên, lương tốt!")
	assert.Equal(t, []string{"Tuyển", "dụng", "nhân", "viên", ",", "lương", "tốt", "!"}, tokens)
}

func TestPrepareShortTextPassesThrough(t *testing.T) {
	got := Prepare("Khai trương chi nhánh mới.")
	assert.Equal(t, "Khai trương chi nhánh mới .", got)
}

func TestPrepareLongTextIsShortened(t *testing.T) {
	var b strings.Builder
	for i := 0; i < 30; i++ {
		b.WriteString("Ngân hàng công bố chương trình ưu đãi mới. ")
	}
	long := b.String()
	require.Greater(t, len(Tokenize(long)), MaxTokens)

	got := Prepare(long)
	assert.NotEmpty(t, got)
	assert.Less(t, len(Tokenize(got)), len(Tokenize(long)))
}

func TestSummarizeKeepsDocumentOrder(t *testing.T) {
	text := "Giá vàng tăng mạnh trong phiên sáng. Thời tiết hôm nay nắng đẹp. Giá vàng dự kiến còn tăng tiếp do giá vàng thế giới."
	got := Summarize(text, 15)
	require.NotEmpty(t, got)

	first := strings.Index(got, "phiên sáng")
	second := strings.Index(got, "tăng tiếp")
	if first >= 0 && second >= 0 {
		assert.Less(t, first, second, "selected sentences keep original order")
	}
}

func TestSummarizeEmptyTextReturnsEmpty(t *testing.T) {
	assert.Empty(t, Summarize("", 50))
}

func TestCleanTextStripsHTML(t *testing.T) {
	got := CleanText("<p>Khuyến mãi <b>lớn</b> cuối   năm</p>")
	assert.Equal(t, "Khuyến mãi lớn cuối năm", got)
}

func TestCleanTextCollapsesWhitespace(t *testing.T) {
	got := CleanText("  nhiều   khoảng \n trắng ")
	assert.Equal(t, "nhiều khoảng trắng", got)
}
