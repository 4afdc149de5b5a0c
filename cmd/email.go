/*
Copyright 2020 Google LLC

Licensed under the Apache License, Version 2.0 (the "License");
you may not use this file except in compliance with the License.
You may obtain a copy of the License at

    http://www.apache.org/licenses/LICENSE-2.0

Unless required by applicable law or agreed to in writing, software
distributed under the License is distributed on an "AS IS" BASIS,
WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
See the License for the specific language governing permissions and
limitations under the License.
*/
package cmd

import (
	"fmt"
	"os"
	"time"

	"github.com/sendgrid/sendgrid-go"
	"github.com/sendgrid/sendgrid-go/helpers/mail"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

type SendEmailConfig struct {
	DataDir        string
	DbPath         string
	From           string
	To             string
	Types          []string
	DryRun         bool
	SendgridApiKey string
}

var emailCmd = &cobra.Command{
	Use:   "email <address> [analysis_name...]",
	Short: "Emails a trend report",
	Long: `Renders the named analyses as an HTML report and sends it to the
given address via SendGrid. With no analysis names, sends all of them.`,
	Args: cobra.MinimumNArgs(1),
	PreRunE: func(cmd *cobra.Command, args []string) error {
		if viper.GetString("from") == "" {
			return fmt.Errorf("required flag(s) \"from\" not set")
		}
		return nil
	},
	Run: func(cmd *cobra.Command, args []string) {
		types := args[1:]
		if len(types) == 0 {
			types = defaultReportAnalyses
		}

		config := SendEmailConfig{
			DataDir:        viper.GetString("data_dir"),
			DbPath:         viper.GetString("database"),
			From:           viper.GetString("from"),
			To:             args[0],
			Types:          types,
			DryRun:         viper.GetBool("dryRun"),
			SendgridApiKey: viper.GetString("sendgrid_api_key"),
		}
		err := sendEmail(config)
		if err != nil {
			fmt.Println(err)
			os.Exit(1)
		}
	},
}

func init() {
	rootCmd.AddCommand(emailCmd)

	var dryRun bool
	emailCmd.Flags().BoolVarP(&dryRun, "dry_run", "n", false, "When true, just print instead of emailing")
	viper.BindPFlag("dryRun", emailCmd.Flags().Lookup("dry_run"))
}

func sendEmail(config SendEmailConfig) error {
	analysers := make([]Analyser, 0, len(config.Types))
	for _, name := range config.Types {
		analyser, err := getAnalyserFromName(name)
		if err != nil {
			return err
		}
		analysers = append(analysers, analyser)
	}

	subject, out, err := generateEmailContent(config, analysers)
	if err != nil {
		return err
	}

	if config.DryRun {
		fmt.Printf("Would have sent email: \nsubject: %s\n%s\n", subject, out)
		return nil
	}

	if config.SendgridApiKey == "" {
		return fmt.Errorf("sendgrid_api_key must be set in order to send emails")
	}

	from := mail.NewEmail("spotify-trend-tools", config.From)
	to := mail.NewEmail(config.To, config.To)
	message := mail.NewSingleEmail(from, subject, to, out, out)
	client := sendgrid.NewSendClient(config.SendgridApiKey)
	if _, err := client.Send(message); err != nil {
		return fmt.Errorf("sendEmail: %w", err)
	}

	return nil
}

func generateEmailContent(config SendEmailConfig, analysers []Analyser) (subject string, body string, err error) {
	out := `
<html>
  <head>
<style>
td {
  padding: 0.1em 0.2em;
}
table, th, td {
  border: 1px solid black;
  border-collapse: collapse;
}
</style>
  </head>
  <body>
`
	for _, analyser := range analysers {
		analysis, err := analyser.GetResults(config.DataDir, config.DbPath)
		if err != nil {
			return "", "", fmt.Errorf("getting results for %s: %w", analyser.GetName(), err)
		}

		out += "<div>\n"
		out += fmt.Sprintf("<h2>%s</h2>\n", analyser.GetName())
		out += `
		<table>
			<thead>
				<tr>
`
		for _, header := range analysis.results[0] {
			out += fmt.Sprintf("<th>%s</th>", header)
		}
		out += `			</tr>
		</thead>
		<tbody>
`
		for _, row := range analysis.results[1:] {
			out += "<tr>\n"
			for _, column := range row {
				out += fmt.Sprintf("<td>%s</td>\n", column)
			}
			out += "</tr>\n"
		}
		out += `
			</tbody>
		</table>
`
		out += fmt.Sprintf("<div>%s</div>\n</div>\n", analysis.summary)
	}
	out += `
  </body>
</html>
`

	subject = fmt.Sprintf("Spotify trend report %s", time.Now().Format("2006-01-02"))

	return subject, out, nil
}
