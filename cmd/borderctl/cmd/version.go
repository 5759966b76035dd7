package cmd

func init() {
	RegisterCommand(&Command{
		Name:  "version",
		Short: "Show version information",
		Long:  "Print the borderctl version and build time.",
		Usage: "borderctl version",
		Run: func(args []string) error {
			printVersion()
			return nil
		},
	})
}
