package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/your-org/frfront/internal/client"
	"github.com/your-org/frfront/internal/screens"
	"github.com/your-org/frfront/internal/storage"
)

type command struct {
	name    string
	args    string
	summary string
	run     func(ctx context.Context, e *env, args []string) (*screens.View, error)
}

var commands = []command{
	{"screens", "", "list the available screens", cmdScreens},
	{"home", "", "service status", noArgs((*screens.Service).Home)},
	{"register", "-name N -surname S -email E [-student-id ID] -photo FILE", "register a person", cmdRegister},
	{"search", "-email E | -student-id ID", "find a person", cmdSearch},
	{"persons", "", "list registered persons", noArgs((*screens.Service).Persons)},
	{"update-features", "-id N -photo FILE", "re-extract a person's features", cmdUpdateFeatures},
	{"recognize", "-email E | -student-id ID | -person-id N -image FILE", "compare a photo with one person", cmdRecognize},
	{"identify", "-image FILE", "identify a photo against everyone", cmdIdentify},
	{"stats", "", "system statistics", noArgs((*screens.Service).Stats)},
	{"admin", "", "configuration, integrity and performance", noArgs((*screens.Service).Admin)},
	{"cleanup", "[-max-age-hours N]", "remove old temporary files", cmdCleanup},
	{"health", "", "service and component health", noArgs((*screens.Service).Health)},
	{"info", "", "service information", noArgs((*screens.Service).SystemInfo)},
	{"config", "", "advanced configuration", noArgs((*screens.Service).AdvancedConfig)},
	{"tools", "[TOOL]", "list or run an administrative tool", cmdTools},
	{"export", "", "export all data", noArgs((*screens.Service).ExportAll)},
	{"export-person", "-email E", "export one person", cmdExportPerson},
	{"import", "FILE", "import a JSON export", cmdImport},
	{"download", "[-o PATH] FILENAME", "download an exported file", cmdDownload},
	{"backup", "", "create a server backup", noArgs((*screens.Service).Backup)},
	{"sync", "", "synchronization status and archive", noArgs((*screens.Service).Data)},
	{"history", "[-screen S] [-limit N]", "recent screen activity (needs a database)", cmdHistory},
}

func lookup(name string) (command, bool) {
	for _, c := range commands {
		if c.name == name {
			return c, true
		}
	}
	return command{}, false
}

func parse(name string, args []string, define func(fs *flag.FlagSet)) (*flag.FlagSet, error) {
	fs := flag.NewFlagSet(name, flag.ContinueOnError)
	fs.SetOutput(io.Discard)
	if define != nil {
		define(fs)
	}
	if err := fs.Parse(args); err != nil {
		return nil, fmt.Errorf("%w: %v", errUsage, err)
	}
	return fs, nil
}

func noArgs(load func(*screens.Service, context.Context) *screens.View) func(context.Context, *env, []string) (*screens.View, error) {
	return func(ctx context.Context, e *env, args []string) (*screens.View, error) {
		if len(args) > 0 {
			return nil, fmt.Errorf("%w: unexpected arguments %v", errUsage, args)
		}
		return load(e.svc, ctx), nil
	}
}

// readImage loads path; an empty path yields an empty file so the screen
// reports the missing photo itself.
func readImage(path string) (client.File, error) {
	if path == "" {
		return client.File{}, nil
	}
	return client.ReadFile(path)
}

func cmdScreens(_ context.Context, e *env, args []string) (*screens.View, error) {
	if len(args) > 0 {
		return nil, fmt.Errorf("%w: unexpected arguments %v", errUsage, args)
	}
	v := &screens.View{Screen: "screens", Title: "Screens"}
	for _, entry := range screens.Catalog() {
		v.Add(entry.Name, entry.Title, entry.Description)
	}
	return v, nil
}

func cmdRegister(ctx context.Context, e *env, args []string) (*screens.View, error) {
	var in screens.RegisterInput
	var photo string
	if _, err := parse("register", args, func(fs *flag.FlagSet) {
		fs.StringVar(&in.Name, "name", "", "")
		fs.StringVar(&in.Surname, "surname", "", "")
		fs.StringVar(&in.Email, "email", "", "")
		fs.StringVar(&in.StudentID, "student-id", "", "")
		fs.StringVar(&photo, "photo", "", "")
	}); err != nil {
		return nil, err
	}
	file, err := readImage(photo)
	if err != nil {
		return nil, err
	}
	in.Photo = file
	return e.svc.Register(ctx, in), nil
}

// personFlags resolves the mutually exclusive person selectors.
func personFlags(email, studentID string, personID int) (by, value string, err error) {
	set := 0
	if email != "" {
		set++
		by, value = screens.SearchByEmail, email
	}
	if studentID != "" {
		set++
		by, value = screens.SearchByStudentID, studentID
	}
	if personID != 0 {
		set++
		by, value = screens.SearchByPersonID, fmt.Sprint(personID)
	}
	if set != 1 {
		return "", "", fmt.Errorf("%w: give exactly one person selector", errUsage)
	}
	return by, value, nil
}

func cmdSearch(ctx context.Context, e *env, args []string) (*screens.View, error) {
	var email, studentID string
	if _, err := parse("search", args, func(fs *flag.FlagSet) {
		fs.StringVar(&email, "email", "", "")
		fs.StringVar(&studentID, "student-id", "", "")
	}); err != nil {
		return nil, err
	}
	by, value, err := personFlags(email, studentID, 0)
	if err != nil {
		return nil, err
	}
	return e.svc.Search(ctx, screens.SearchInput{By: by, Value: value}), nil
}

func cmdUpdateFeatures(ctx context.Context, e *env, args []string) (*screens.View, error) {
	var id int
	var photo string
	if _, err := parse("update-features", args, func(fs *flag.FlagSet) {
		fs.IntVar(&id, "id", 0, "")
		fs.StringVar(&photo, "photo", "", "")
	}); err != nil {
		return nil, err
	}
	file, err := readImage(photo)
	if err != nil {
		return nil, err
	}
	return e.svc.UpdateFeatures(ctx, id, file), nil
}

func cmdRecognize(ctx context.Context, e *env, args []string) (*screens.View, error) {
	var email, studentID, image string
	var personID int
	if _, err := parse("recognize", args, func(fs *flag.FlagSet) {
		fs.StringVar(&email, "email", "", "")
		fs.StringVar(&studentID, "student-id", "", "")
		fs.IntVar(&personID, "person-id", 0, "")
		fs.StringVar(&image, "image", "", "")
	}); err != nil {
		return nil, err
	}
	by, value, err := personFlags(email, studentID, personID)
	if err != nil {
		return nil, err
	}
	file, err := readImage(image)
	if err != nil {
		return nil, err
	}
	return e.svc.Recognize(ctx, screens.RecognitionInput{By: by, Value: value, Image: file}), nil
}

func cmdIdentify(ctx context.Context, e *env, args []string) (*screens.View, error) {
	var image string
	if _, err := parse("identify", args, func(fs *flag.FlagSet) {
		fs.StringVar(&image, "image", "", "")
	}); err != nil {
		return nil, err
	}
	file, err := readImage(image)
	if err != nil {
		return nil, err
	}
	return e.svc.Identify(ctx, file), nil
}

func cmdCleanup(ctx context.Context, e *env, args []string) (*screens.View, error) {
	var hours int
	if _, err := parse("cleanup", args, func(fs *flag.FlagSet) {
		fs.IntVar(&hours, "max-age-hours", client.DefaultCleanupMaxAgeHours, "")
	}); err != nil {
		return nil, err
	}
	return e.svc.Cleanup(ctx, hours), nil
}

func cmdTools(ctx context.Context, e *env, args []string) (*screens.View, error) {
	switch len(args) {
	case 0:
		v := &screens.View{Screen: screens.ScreenTools, Title: "System Tools"}
		v.Add("Tools", screens.Tools()...)
		return v, nil
	case 1:
		return e.svc.RunTool(ctx, args[0]), nil
	}
	return nil, fmt.Errorf("%w: run one tool at a time", errUsage)
}

func cmdExportPerson(ctx context.Context, e *env, args []string) (*screens.View, error) {
	var email string
	if _, err := parse("export-person", args, func(fs *flag.FlagSet) {
		fs.StringVar(&email, "email", "", "")
	}); err != nil {
		return nil, err
	}
	return e.svc.ExportPerson(ctx, email), nil
}

func cmdImport(ctx context.Context, e *env, args []string) (*screens.View, error) {
	if len(args) != 1 {
		return nil, fmt.Errorf("%w: give the JSON file to import", errUsage)
	}
	file, err := client.ReadFile(args[0])
	if err != nil {
		return nil, err
	}
	return e.svc.Import(ctx, file), nil
}

func cmdDownload(ctx context.Context, e *env, args []string) (*screens.View, error) {
	var out string
	fs, err := parse("download", args, func(fs *flag.FlagSet) {
		fs.StringVar(&out, "o", "", "")
	})
	if err != nil {
		return nil, err
	}
	if fs.NArg() != 1 {
		return nil, fmt.Errorf("%w: give the file name to download", errUsage)
	}

	v, d := e.svc.Download(ctx, fs.Arg(0))
	if d == nil {
		return v, nil
	}
	if out == "-" {
		// The file itself is the output.
		_, err := e.stdout.Write(d.Data)
		return nil, err
	}
	if out == "" {
		out = filepath.Base(d.Filename)
	}
	if err := os.WriteFile(out, d.Data, 0o644); err != nil {
		return nil, fmt.Errorf("write %s: %w", out, err)
	}
	v.Add("Saved", out)
	return v, nil
}

func cmdHistory(ctx context.Context, e *env, args []string) (*screens.View, error) {
	var screen string
	var limit int
	if _, err := parse("history", args, func(fs *flag.FlagSet) {
		fs.StringVar(&screen, "screen", "", "")
		fs.IntVar(&limit, "limit", storage.DefaultActivityLimit, "")
	}); err != nil {
		return nil, err
	}
	if e.db == nil {
		return nil, fmt.Errorf("activity history needs a database; set database.host or FR_DB_HOST")
	}

	activities, total, err := e.db.ListActivities(ctx, screen, storage.ClampLimit(limit))
	if err != nil {
		return nil, err
	}
	v := &screens.View{Screen: "history", Title: "Activity History"}
	v.Notice = fmt.Sprintf("%d of %d activities", len(activities), total)
	for _, a := range activities {
		lines := []string{
			"Outcome: " + string(a.Outcome),
			"Duration: " + a.Duration.String(),
			"Request: " + a.RequestID,
		}
		if a.Subject != "" {
			lines = append(lines, "Subject: "+a.Subject)
		}
		if a.Message != "" {
			lines = append(lines, "Message: "+strings.ReplaceAll(a.Message, "\n", " "))
		}
		v.Add(fmt.Sprintf("%s %s/%s", a.OccurredAt.Format("2006-01-02 15:04:05"), a.Screen, a.Action), lines...)
	}
	return v, nil
}
