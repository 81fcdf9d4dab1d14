// Package recipient loads mailing lists from comma-separated files.
//
// A list needs three columns: an email column, a first-name column and a
// last-name column. Header names are matched case-insensitively and loosely,
// so "Email", "E-mail", "email_address", "First Name", "firstname" and
// "Last_Name" all resolve:
//
//	set, err := recipient.Load("contacts.csv")
//	if err != nil {
//		var missing *recipient.MissingColumnsError
//		if errors.As(err, &missing) {
//			fmt.Println("missing:", missing.Missing, "available:", missing.Available)
//		}
//		return err
//	}
//
// Rows with an empty or malformed email address are dropped without an
// error, so the returned Set can be shorter than the file. Order follows the
// file and duplicates are kept.
//
// Lists stored in S3 are read through any ObjectGetter, such as
// storage.S3Storage:
//
//	set, err := recipient.LoadObject(ctx, store, "lists/october.csv")
package recipient
