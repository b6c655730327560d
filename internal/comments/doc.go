// Package comments rewrites the legacy three-line REM{} comment banner into
// the decorated four-line banner used by SYNOR 5000 programs.
//
// A legacy banner looks like
//
//	REM{///////////////////////////////////////////////////}
//	REM{ Check continuity }
//	REM{///////////////////////////////////////////////////}
//
// and becomes
//
//	///////////////////////////////////////////////////////////////////////////////
//	///////////////////////////////////////////////////////////////////////////////
//	///////////////////////////////  Check continuity  ///////////////////////////
//	///////////////////////////////////////////////////////////////////////////////
//
// Rewriting is a two step process: Find produces the matches in document
// order, then Apply performs one reconstruction pass over the planned edits.
package comments
