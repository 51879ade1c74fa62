package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var (
	loginUsername string
	loginPassword string
	loginEmail    string
)

func init() {
	loginCmd := &cobra.Command{
		Use:   "login",
		Short: "登录并保存凭证",
		Run:   runLogin,
	}
	loginCmd.Flags().StringVarP(&loginUsername, "username", "u", "", "用户名")
	loginCmd.Flags().StringVarP(&loginPassword, "password", "p", "", "密码")

	registerCmd := &cobra.Command{
		Use:   "register",
		Short: "注册账号并登录",
		Run:   runRegister,
	}
	registerCmd.Flags().StringVarP(&loginUsername, "username", "u", "", "用户名")
	registerCmd.Flags().StringVarP(&loginPassword, "password", "p", "", "密码")
	registerCmd.Flags().StringVarP(&loginEmail, "email", "e", "", "邮箱")

	logoutCmd := &cobra.Command{
		Use:   "logout",
		Short: "退出登录并清除凭证",
		Run:   runLogout,
	}

	whoamiCmd := &cobra.Command{
		Use:   "whoami",
		Short: "查看当前登录用户",
		Run:   runWhoami,
	}

	rootCmd.AddCommand(loginCmd, registerCmd, logoutCmd, whoamiCmd)
}

func runLogin(cmd *cobra.Command, args []string) {
	if loginUsername == "" || loginPassword == "" {
		printError("用户名和密码不能为空")
		os.Exit(1)
	}

	result, err := newClient().Login(cmd.Context(), loginUsername, loginPassword)
	if err != nil {
		printError(fmt.Sprintf("登录失败: %v", err))
		os.Exit(1)
	}

	if err := saveToken(result.Token); err != nil {
		printError(fmt.Sprintf("保存凭证失败: %v", err))
		os.Exit(1)
	}
	printSuccess(fmt.Sprintf("已登录: %s", result.User.Username))
}

func runRegister(cmd *cobra.Command, args []string) {
	if loginUsername == "" || loginPassword == "" {
		printError("用户名和密码不能为空")
		os.Exit(1)
	}

	result, err := newClient().Register(cmd.Context(), loginUsername, loginPassword, loginEmail)
	if err != nil {
		printError(fmt.Sprintf("注册失败: %v", err))
		os.Exit(1)
	}

	if err := saveToken(result.Token); err != nil {
		printError(fmt.Sprintf("保存凭证失败: %v", err))
		os.Exit(1)
	}
	printSuccess(fmt.Sprintf("已注册并登录: %s", result.User.Username))
}

func runLogout(cmd *cobra.Command, args []string) {
	// 服务端登出失败不阻止本地凭证清理
	_ = newClient().Logout(cmd.Context())
	if err := clearToken(); err != nil {
		printError(fmt.Sprintf("清除凭证失败: %v", err))
		os.Exit(1)
	}
	printSuccess("已退出登录")
}

func runWhoami(cmd *cobra.Command, args []string) {
	info, err := newClient().GetUserInfo(cmd.Context())
	if err != nil {
		printError(fmt.Sprintf("获取用户信息失败: %v", err))
		os.Exit(1)
	}
	fmt.Printf("%s", info.Username)
	if info.Email != "" {
		dimColor.Printf("  <%s>", info.Email)
	}
	fmt.Println()
}
