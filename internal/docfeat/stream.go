package docfeat

import (
	"github.com/kittclouds/rankgen/internal/fwdindex"
	"github.com/kittclouds/rankgen/internal/ids"
	"github.com/kittclouds/rankgen/internal/queryfile"
)

// streamFeatures derives the stream-length moments spec.md §4.2 defines:
// one whole-document set plus one set per scored field. Per spec.md §9
// Open Question 2, the whole-document variance formula is structurally
// different from the per-field one and is reproduced as given rather
// than unified with it.
func (e *Extractor) streamFeatures(q *queryfile.QueryTrain, fe *fwdindex.FreqsEntry) []Column {
	var docTF float64
	for t := range q.QFt {
		docTF += float64(fe.DFt[t])
	}
	cols := docStreamColumns(float64(fe.DocLength), docTF)

	for _, field := range ids.ScoredFields {
		var fieldTF float64
		for t := range q.QFt {
			fieldTF += float64(fe.FFt[fwdindex.FieldTerm{Field: field, Term: t}])
		}
		cols = append(cols, fieldStreamColumns(field.String(),
			float64(fe.FieldLen[field]), float64(fe.FieldMinLen[field]), float64(fe.FieldMaxLen[field]),
			float64(fe.FieldsStats[field]), fe.FieldLenSumSqrs[field], fieldTF)...)
	}
	return cols
}

// docStreamColumns computes the whole-document stream_len moments, using
// the §9 Open Question 2 variance formula
// (doc_length - doc_length^2) / doc_tf.
func docStreamColumns(docLen, tf float64) []Column {
	cols := []Column{{"stream_len_doc", docLen}}
	var sumS, minS, maxS, meanS, varS float64
	if tf > 0 {
		sumS = docLen / tf
		minS = docLen / tf
		maxS = docLen / tf
		meanS = docLen / tf
		varS = (docLen - docLen*docLen) / tf
	}
	return append(cols,
		Column{"sum_stream_len_doc", sumS},
		Column{"min_stream_len_doc", minS},
		Column{"max_stream_len_doc", maxS},
		Column{"mean_stream_len_doc", meanS},
		Column{"variance_stream_len_doc", varS},
	)
}

// fieldStreamColumns computes one field's stream_len moments per
// spec.md §4.2. stream_len is negated when the field's tag opens more
// than once (penalizing e.g. a duplicated title); the five TF-normalized
// moments are left at 0 when the field's query-term frequency is 0.
func fieldStreamColumns(name string, fieldLen, minLen, maxLen, opens, sumSqrs, tf float64) []Column {
	streamLen := fieldLen
	if opens > 1 {
		streamLen = -fieldLen
	}
	cols := []Column{{"stream_len_" + name, streamLen}}

	var sumS, minS, maxS, meanS, varS float64
	if tf > 0 {
		sumS = fieldLen / tf
		minS = minLen / tf
		maxS = maxLen / tf
		if opens > 0 {
			mean := fieldLen / opens
			meanS = mean / tf
			if fieldLen > 0 {
				varS = (sumSqrs/fieldLen - mean*mean) / tf
			}
		}
	}
	return append(cols,
		Column{"sum_stream_len_" + name, sumS},
		Column{"min_stream_len_" + name, minS},
		Column{"max_stream_len_" + name, maxS},
		Column{"mean_stream_len_" + name, meanS},
		Column{"variance_stream_len_" + name, varS},
	)
}

// tagQueryCounts counts, for each counted field, how many distinct query
// terms actually occur in that field of the document.
func (e *Extractor) tagQueryCounts(q *queryfile.QueryTrain, fe *fwdindex.FreqsEntry) []Column {
	cols := make([]Column, 0, len(ids.CountedFields))
	for _, field := range ids.CountedFields {
		var count float64
		for t := range q.QFt {
			if fe.FFt[fwdindex.FieldTerm{Field: field, Term: t}] > 0 {
				count++
			}
		}
		cols = append(cols, Column{"tag_query_count_" + field.String(), count})
	}
	return cols
}

// tagCounts reports the raw tag-open counts from fields_stats for each
// counted field (spec.md §4.2's "document-structure counts"); the title
// count is negated when it opens more than once.
func (e *Extractor) tagCounts(fe *fwdindex.FreqsEntry) []Column {
	cols := make([]Column, 0, len(ids.CountedFields))
	for _, field := range ids.CountedFields {
		count := float64(fe.FieldsStats[field])
		if field == ids.FieldTitle && count > 1 {
			count = -count
		}
		cols = append(cols, Column{"tag_count_" + field.String(), count})
	}
	return cols
}
