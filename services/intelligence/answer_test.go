package ai

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"laohotel/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func testOptions() AnswerOptions {
	return AnswerOptions{Timeout: time.Second, MaxConcurrency: 1, MaxNewTokens: 64, ContextChars: 300}
}

func TestAnswerSuccessTagsVariant(t *testing.T) {
	gen := &fakeGenerator{text: "System: x\n\nAssistant: ວັງວຽງມີຖ້ຳຫຼາຍແຫ່ງ "}
	a := NewAnswerer(gen, testOptions(), nil, zap.NewNop())

	reply, source := a.Answer(context.Background(), "ຖ້ຳ", "Tham Chang cave")

	assert.Equal(t, "ວັງວຽງມີຖ້ຳຫຼາຍແຫ່ງ", reply)
	assert.Equal(t, "RAG_TEST", source)
	assert.Contains(t, gen.last, "Context: Tham Chang cave...")
	assert.Contains(t, gen.last, "Human: ຖ້ຳ")
}

func TestAnswerTruncatesPromptContext(t *testing.T) {
	gen := &fakeGenerator{text: "ok"}
	opts := testOptions()
	opts.ContextChars = 6
	a := NewAnswerer(gen, opts, nil, zap.NewNop())

	a.Answer(context.Background(), "q", "ວັງວຽງ ແມ່ນເມືອງທ່ອງທ່ຽວ")

	assert.Contains(t, gen.last, "Context: ວັງວຽງ...")
}

func TestAnswerTimeoutFallsBackToContext(t *testing.T) {
	gen := &fakeGenerator{text: "late", delay: time.Second}
	opts := testOptions()
	opts.Timeout = 20 * time.Millisecond
	a := NewAnswerer(gen, opts, nil, zap.NewNop())
	ragContext := strings.Repeat("ກ", 600)

	start := time.Now()
	reply, source := a.Answer(context.Background(), "q", ragContext)

	assert.Less(t, time.Since(start), 500*time.Millisecond)
	assert.Equal(t, models.SourceContextOnlyTimeout, source)
	assert.Equal(t, "ຈາກຂໍ້ມູນທີ່ຂ້ອຍມີ:\n"+strings.Repeat("ກ", 500)+"...", reply)
}

func TestAnswerWaitingForSlotCountsTowardTimeout(t *testing.T) {
	gen := &fakeGenerator{text: "slow", delay: 300 * time.Millisecond}
	opts := testOptions()
	opts.Timeout = 100 * time.Millisecond
	a := NewAnswerer(gen, opts, nil, zap.NewNop())
	require.True(t, a.sem.TryAcquire(1))
	defer a.sem.Release(1)

	_, source := a.Answer(context.Background(), "q", "ctx")

	assert.Equal(t, models.SourceContextOnlyTimeout, source)
}

func TestAnswerResourceExhausted(t *testing.T) {
	gen := &fakeGenerator{err: errors.New("llama_decode: out of memory")}
	a := NewAnswerer(gen, testOptions(), nil, zap.NewNop())

	reply, source := a.Answer(context.Background(), "q", "ctx")

	assert.Equal(t, models.SourceLLMResourceExhausted, source)
	assert.Equal(t, "ຂໍອະໄພ, ລະບົບບໍ່ສາມາດສ້າງຄຳຕອບໄດ້ໃນຕອນນີ້. ກະລຸນາລອງຖາມຄຳຖາມສັ້ນໆ.", reply)
}

func TestAnswerGenericFailure(t *testing.T) {
	gen := &fakeGenerator{err: errors.New("bad request")}
	a := NewAnswerer(gen, testOptions(), nil, zap.NewNop())

	reply, source := a.Answer(context.Background(), "q", "ctx")

	assert.Equal(t, models.SourceLLMError, source)
	assert.Equal(t, "ຂໍອະໄພ, ລະບົບບໍ່ສາມາດສ້າງຄຳຕອບໄດ້ໃນຕອນນີ້. ກະລຸນາລອງຖາມຄຳຖາມສັ້ນໆ.", reply)
}

func TestAnswerFailuresShareReplyButNotTag(t *testing.T) {
	exhausted := NewAnswerer(&fakeGenerator{err: errors.New("CUDA error: out of memory")}, testOptions(), nil, zap.NewNop())
	failed := NewAnswerer(&fakeGenerator{err: errors.New("connection reset")}, testOptions(), nil, zap.NewNop())

	r1, s1 := exhausted.Answer(context.Background(), "q", "ctx")
	r2, s2 := failed.Answer(context.Background(), "q", "ctx")

	assert.Equal(t, r1, r2)
	assert.NotEqual(t, s1, s2)
}

func TestAnswerWithoutGenerator(t *testing.T) {
	a := NewAnswerer(nil, testOptions(), nil, zap.NewNop())

	reply, source := a.Answer(context.Background(), "q", "Blue Lagoon")

	assert.Equal(t, models.SourceContextOnly, source)
	assert.Equal(t, "ຈາກຂໍ້ມູນທີ່ຂ້ອຍມີ:\nBlue Lagoon...", reply)
}
