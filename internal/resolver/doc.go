// Package resolver answers "is this text in the Kodi library?".
//
// CheckMedium splits free text into title and artist candidates, queries the
// audio partition and then the video partition with a per-partition fallback,
// and merges the formatted hits into a MediumStatus. Failures never escape as
// errors: the first failing call aborts the check and is reported as
// {ok:false, error}.
package resolver
