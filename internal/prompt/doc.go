// Package prompt builds the messages `squash explain` sends to a language model.
//
// A [PromptType] selects the task, [BuildOptions] carries the compacted report
// and its context, and [Build] returns a []llm.Message slice that can be sent
// directly to any [llm.Provider]:
//
//	messages, err := prompt.Build(prompt.TypeExplain, prompt.BuildOptions{
//	    Report: report,
//	    Stats:  stats.String(),
//	    Files:  files,
//	})
//	if err != nil {
//	    return err
//	}
//	answer, err := llm.Stream(ctx, provider, messages, chatOpts, os.Stdout)
//
// Both system prompts describe the report notation ([Nx] counts, <k>
// placeholders, sample lines, the binary images section) so the model reads
// the compaction instead of guessing at it.
package prompt
