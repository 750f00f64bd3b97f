// Package admixture loads ancestry-assignment output (a PLINK-style fam file
// and an ADMIXTURE Q matrix), joins the two by row position, assigns each
// sample to its dominant ancestral component and writes the annotated table.
package admixture
