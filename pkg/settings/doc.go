// Package settings holds the provider credentials used by a dispatch and
// persists them as JSON.
//
// Exactly one provider variant is active at a time. The others may be
// stored but are neither validated nor used:
//
//	store := settings.NewStore("")
//	s, err := store.Load()
//	if err != nil {
//		return err
//	}
//	if err := s.Validate(); err != nil {
//		return err
//	}
//
// Load reads the file (a missing file yields defaults) and applies
// MASSMAIL_<SECTION>_<FIELD> environment overrides, for example
// MASSMAIL_SMTP_PASSWORD or MASSMAIL_PROVIDER. Files written by older
// releases in the flat form (smtp_server, aws_region, ...) are still
// understood; Save always writes the nested form.
package settings
