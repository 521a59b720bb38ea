package config

// Built-in prompt templates. These are the deployed defaults; config.toml can
// override any of them. Slot order is documented on the owning config struct.

const defaultClassifyFallbackPrompt = `I have these clinical documents for an autism assessment:
%s

The filenames are: %s

I need to find these specific items that were not detected by filename:
%s

For each item, tell me:
- gp_referral: Is there a GP or paediatrician referral letter?
- hearing_test: Is there an audiological hearing test result (BERA, ABR, audiometry)?
- dev_history: Is there developmental history (milestones, birth history, early concerns)?
- teacher_input: Is there a teacher report or school observation?

Return JSON with ONLY the items I asked about. Use EXACT filenames from the list above.
Example: {"teacher_input": {"status": "present", "source": "Exact_Filename.docx"}}

Status options: "present", "missing", "normal" (for hearing), "not_done" (for hearing)`

const defaultEvidencePrompt = `You must respond with ONLY a JSON object. No explanations. No markdown.

TASK: Extract EXACT word-for-word quotes from this clinical document for autism assessment.

CRITICAL INSTRUCTION: You MUST extract BOTH types of evidence:
1. Evidence that a feature IS PRESENT (supports ASD)
2. Evidence that a feature is ABSENT, INTACT, or TYPICAL (contradicts ASD)

=== CRITERIA ===

A1 - SOCIAL-EMOTIONAL RECIPROCITY
A2 - NONVERBAL COMMUNICATION
A3 - RELATIONSHIPS
B1 - STEREOTYPED/REPETITIVE MOVEMENTS OR SPEECH
B2 - INSISTENCE ON SAMENESS / ROUTINES
B3 - RESTRICTED/FIXATED INTERESTS
B4 - SENSORY HYPER/HYPOREACTIVITY
C - EARLY DEVELOPMENTAL PERIOD
D - FUNCTIONAL IMPAIRMENT
E - DIFFERENTIAL DIAGNOSIS

=== RULES ===
1. Copy EXACT quotes - do not paraphrase
2. Each quote should be 5-40 words
3. Extract ALL relevant quotes - do not limit
4. "Explicitly absent" statements ARE evidence - extract them

=== DOCUMENT ===
%s

Return ONLY this JSON with actual quotes:
{"A1":[],"A2":[],"A3":[],"B1":[],"B2":[],"B3":[],"B4":[],"C":[],"D":[],"E":[]}

Each array contains simple quote strings only - no objects, no source field.
Empty array [] if no relevant quotes. Extract comprehensively.`

const defaultFunctionalPrompt = `You must respond with ONLY a JSON object. No explanations. No markdown. Just JSON.

Extract information for a functional assessment from the clinical documents below.
For each domain, extract relevant quotes and summarize key findings.

DOMAINS TO EXTRACT:
- strengths: Skills, interests, abilities, things the person enjoys or is good at
- medical: Health conditions, physical development, vision, hearing, medications
- cognitive: Thinking, learning, problem-solving, reasoning, academic performance
- speech: Language development, communication skills, receptive/expressive language
- motor: Gross motor, fine motor, coordination, handwriting, physical skills
- social: Peer relationships, social understanding, friendships, play skills
- emotional: Emotional regulation, anxiety, mood, behavioral concerns
- attention: Focus, concentration, executive function, planning, organization
- adaptive: Self-care, daily living skills, independence, practical skills
- background: Developmental history, family history, services involved, psychosocial factors

DOCUMENT TEXT:
%s

Respond with ONLY this JSON structure:
{
  "strengths": "Summary of strengths and interests found...",
  "medical": "Summary of medical/health information...",
  "cognitive": "Summary of cognitive/learning information...",
  "speech": "Summary of speech/language/communication...",
  "motor": "Summary of motor skills...",
  "social": "Summary of social functioning...",
  "emotional": "Summary of emotional regulation/behaviour...",
  "attention": "Summary of attention/executive function...",
  "adaptive": "Summary of adaptive/daily living skills...",
  "background": "Summary of history and background..."
}

If no information is found for a domain, use an empty string "".`

const defaultQuotesPrompt = `You must respond with ONLY a JSON object. No other text.

Extract all sentences related to autism assessment from this document.

Categories:
- social: social interaction, engagement, relationships
- communication: language, speech, gestures, pointing
- repetitive: repetitive movements, stereotypies, routines
- sensory: sensory responses, pain sensitivity
- development: developmental milestones, early concerns

Document:
%s

Respond with ONLY this JSON filled with quotes:
{"social":[],"communication":[],"repetitive":[],"sensory":[],"development":[]}`

const defaultCategorizePrompt = `You must respond with ONLY a JSON object. No other text.

Categorize these clinical quotes into DSM-5 autism criteria.

CRITERIA:
A1 = Social reciprocity: back-and-forth interaction, responding to name, sharing enjoyment
A2 = Nonverbal: eye contact, gestures, pointing, facial expressions
A3 = Relationships: peer interest, friendships, imaginative play
B1 = Repetitive: stereotyped movements (rocking, flapping, toe walking), echolalia
B2 = Routines: insistence on sameness, distress at changes
B3 = Interests: restricted intense interests, fixations
B4 = Sensory: over/under-reactive to sensory input
C = Early onset: symptoms in early developmental period
D = Impact: functional impairment
E = Rule-outs: hearing/cognitive testing

RULES:
- "supporting" = quote shows the autism feature IS present
- "contradicting" = quote shows the feature is NOT present or is typical
- Include source document in brackets

QUOTES:
%s

Respond with ONLY this JSON:
{"A1":{"supporting":[],"contradicting":[]},"A2":{"supporting":[],"contradicting":[]},"A3":{"supporting":[],"contradicting":[]},"B1":{"supporting":[],"contradicting":[]},"B2":{"supporting":[],"contradicting":[]},"B3":{"supporting":[],"contradicting":[]},"B4":{"supporting":[],"contradicting":[]},"C":{"supporting":[],"contradicting":[]},"D":{"supporting":[],"contradicting":[]},"E":{"supporting":[],"contradicting":[]}}`
