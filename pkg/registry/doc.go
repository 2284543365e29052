/*
Package registry provides file-level operations on a multicodec table: load,
validate, synchronize the mimetype block against the IANA registry, and
reformat.

# Quick Start

Validate a table:

	report, err := registry.ValidateFile("table.csv", types.StrictSchema(), nil)
	if err != nil {
	    log.Fatal(err)
	}
	if !report.OK() {
	    fmt.Fprint(os.Stderr, report.FormatLines())
	}

Synchronize the mimetype block:

	src := &iana.HTTPSource{}
	res, err := registry.SyncFile(ctx, "table.csv", src, nil)
	if err != nil {
	    log.Fatal(err)
	}
	for _, a := range res.Added {
	    fmt.Printf("%s %s\n", codec.Encode(a.Code), a.Name)
	}

Preview without touching the file:

	res, err := registry.SyncFile(ctx, "table.csv", src, &registry.SyncOptions{DryRun: true})
	os.Stdout.Write(res.Output)

# Atomicity

Every write goes through a temp file in the table's directory that is synced
and renamed over the original. An error at any point before the rename
leaves the table untouched.
*/
package registry
