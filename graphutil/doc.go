// Package graphutil provides analysis and maintenance utilities that operate
// on an already-built core.Graph: pruning weak edges, finding weakly and
// strongly connected components, and bounded-depth neighborhood search. GEXF
// export lives in the separate gexf package.
package graphutil
