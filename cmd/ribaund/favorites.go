package main

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"
)

var favoritesCmd = &cobra.Command{
	Use:   "favorites",
	Short: "List favorited posts",
	RunE:  runFavorites,
}

var favoritesToggleCmd = &cobra.Command{
	Use:   "toggle <post-id>",
	Short: "Favorite or unfavorite a post",
	Args:  cobra.ExactArgs(1),
	RunE:  runFavoritesToggle,
}

var themeCmd = &cobra.Command{
	Use:       "theme [dark|light]",
	Short:     "Show or set the theme preference",
	Args:      cobra.MaximumNArgs(1),
	ValidArgs: []string{"dark", "light"},
	RunE:      runTheme,
}

func init() {
	favoritesCmd.AddCommand(favoritesToggleCmd)
	rootCmd.AddCommand(favoritesCmd, themeCmd)
}

func runFavorites(cmd *cobra.Command, args []string) error {
	st, err := openStore()
	if err != nil {
		return err
	}
	defer st.Close()

	posts, err := st.Favorites()
	if err != nil {
		return err
	}
	if len(posts) == 0 {
		fmt.Println("No favorites yet.")
		return nil
	}
	for _, p := range posts {
		printPostRow(p)
	}
	return nil
}

func runFavoritesToggle(cmd *cobra.Command, args []string) error {
	id, err := strconv.Atoi(args[0])
	if err != nil {
		return fmt.Errorf("invalid post id %q", args[0])
	}

	svc, _, err := newService()
	if err != nil {
		return err
	}
	post, err := findPost(cmd.Context(), svc, strconv.Itoa(id))
	if err != nil {
		return err
	}

	st, err := openStore()
	if err != nil {
		return err
	}
	defer st.Close()

	fav, err := st.ToggleFavorite(*post)
	if err != nil {
		return err
	}
	if fav {
		fmt.Printf("Added %q to favorites.\n", postTitle(*post))
	} else {
		fmt.Printf("Removed %q from favorites.\n", postTitle(*post))
	}
	return nil
}

func runTheme(cmd *cobra.Command, args []string) error {
	st, err := openStore()
	if err != nil {
		return err
	}
	defer st.Close()

	if len(args) == 1 {
		if err := st.SetDarkMode(args[0] == "dark"); err != nil {
			return err
		}
	}

	enabled, set, err := st.DarkMode()
	if err != nil {
		return err
	}
	switch {
	case !set:
		fmt.Println("Theme: system default")
	case enabled:
		fmt.Println("Theme: dark")
	default:
		fmt.Println("Theme: light")
	}
	return nil
}
