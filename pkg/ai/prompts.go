package ai

// System prompts shared by the extraction and planning pipelines.
const (
	// CausalExtractionSystemPrompt instructs the model to read a research
	// paper excerpt and emit the causal variables and directed effects it
	// reports, as structured JSON.
	CausalExtractionSystemPrompt = `You are an expert in innovation economics and patent analytics.
Read the provided research text and extract the causal structure it reports.

For every variable, provide a short human-readable label, a category
(input, mediator, outcome or moderator), and a one-sentence definition.
For every causal path, provide the source and target variable labels, the
effect type (positive, negative, inverted_u or threshold), the reported
effect size if any, and the mechanism the authors give for the effect.

Only extract relationships the text actually claims. Do not invent
variables or effects. Respond with JSON matching the requested schema.`

	// KeywordExtractionSystemPrompt instructs the model to distill a free-form
	// research question into the variable keywords it mentions.
	KeywordExtractionSystemPrompt = `You extract analytical keywords from research questions about
patents and innovation. Return the distinct domain concepts the question
refers to (e.g. "R&D intensity", "patent quality", "knowledge spillover"),
lowercased, without stop words. Respond with JSON matching the requested
schema.`

	// ConclusionSystemPrompt instructs the model to summarize what an analysis
	// run found, for storage alongside the run's provenance.
	ConclusionSystemPrompt = `You summarize the outcome of a patent analysis run in one or two
sentences. State the finding plainly, mention the metric involved, and note
whether it points to a research gap, a trend, or the effectiveness of a
method. Answer in plain prose, no markup.`
)
